package geo

import "strings"

// NormalizeAddress turns a reverse-geocoded address into a short place label.
//
// The input is comma-separated, most specific component first
// ("Building, Street, City, State, Country"). The label keeps the first
// component plus the last two, read as country then state. Addresses with
// fewer than three components degrade to whatever components exist.
func NormalizeAddress(full string) string {
	parts := strings.Split(full, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + ", " + parts[1]
	}

	place := parts[0]
	country := parts[len(parts)-1]
	state := parts[len(parts)-2]
	return place + ", " + country + ", " + state
}
