// Package author parses free-text author names.
package author

import "strings"

// Name is a parsed author name. The zero value means "no author given";
// the query compiler adds no author clause for it.
type Name struct {
	firstname string
	surname   string
}

// Parse splits free text into firstname and surname.
// A single token becomes the firstname with an empty surname. Tokens beyond
// the second are dropped on purpose.
func Parse(text string) Name {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return Name{}
	case 1:
		return Name{firstname: fields[0]}
	default:
		return Name{firstname: fields[0], surname: fields[1]}
	}
}

// Firstname returns the first name.
func (n Name) Firstname() string { return n.firstname }

// Surname returns the surname, which may be empty.
func (n Name) Surname() string { return n.surname }

// IsZero reports whether no author was given.
func (n Name) IsZero() bool { return n.firstname == "" }
