// Package result holds search hit and aggregation bucket types.
package result

// Hit is a single retrieved document surrogate.
type Hit struct {
	title string
}

// NewHit creates a hit.
func NewHit(title string) Hit {
	return Hit{title: title}
}

// Title returns the document title.
func (h Hit) Title() string { return h.title }

// Dedupe collapses hits that are equal in all projected fields, keeping the
// first occurrence. Applying it twice yields the same set as applying it once.
func Dedupe(hits []Hit) []Hit {
	if len(hits) == 0 {
		return hits
	}
	seen := make(map[Hit]struct{}, len(hits))
	out := hits[:0:0]
	for _, h := range hits {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Bucket is a grouped aggregation result: a field value and the number of
// documents carrying it.
type Bucket struct {
	Key   string
	Count int64
}
