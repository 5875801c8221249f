package geo

// Candidate is a single forward-geocoding result, ranked by the provider.
// Only candidates whose address type names a settlement-level area qualify
// for resolution.
type Candidate struct {
	AddressType string
	DisplayName string
	Point       Point
}

// Qualifies reports whether the candidate's address type is one the resolver
// accepts: city, state, or country.
func (c Candidate) Qualifies() bool {
	switch c.AddressType {
	case "city", "state", "country":
		return true
	}
	return false
}
