package geo

import "testing"

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full address",
			in:   "Louvre, Rue de Rivoli, Paris, Ile-de-France, France",
			want: "Louvre, France, Ile-de-France",
		},
		{
			name: "three components",
			in:   "Paris, Ile-de-France, France",
			want: "Paris, France, Ile-de-France",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  Paris ,  Ile-de-France ,  France ",
			want: "Paris, France, Ile-de-France",
		},
		{
			name: "two components",
			in:   "Paris, France",
			want: "Paris, France",
		},
		{
			name: "single component",
			in:   "France",
			want: "France",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAddress(tc.in)
			if got != tc.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
