package domain

// Entity is a named-entity span recognized in free text.
type Entity struct {
	Text  string
	Label string
}

// LabelDate marks entities that denote a temporal expression.
const LabelDate = "DATE"
