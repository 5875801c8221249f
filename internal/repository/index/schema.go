package index

import "github.com/geodex-search/geodex/internal/db"

// Index field names. Nested document parts (authors, geopoints) are stored
// flattened as <path>_<field> hash fields.
const (
	fieldContent  = "content"
	fieldTitle    = "title"
	fieldTopics   = "topics"
	fieldTemporal = "temporal_expressions"
	fieldDate     = "date"

	fieldAuthorFirstname = "authors_firstname"
	fieldAuthorSurname   = "authors_surname"
	fieldGeopointLat     = "geopoints_lat"
	fieldGeopointLon     = "geopoints_lon"
)

// Definition returns the FT index definition for the document corpus.
func Definition(name, keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(name).
		Prefix(keyPrefix).
		Text(fieldContent).
		Text(fieldTitle).
		Tag(fieldTopics).
		Tag(fieldAuthorFirstname).
		Tag(fieldAuthorSurname).
		Text(fieldTemporal).
		Tag(fieldGeopointLat).
		Tag(fieldGeopointLon).
		Tag(fieldDate).
		MustBuild()
}
