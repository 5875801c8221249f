package author

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		firstname string
		surname   string
		zero      bool
	}{
		{name: "empty", in: "", zero: true},
		{name: "whitespace only", in: "   ", zero: true},
		{name: "single token", in: "Jane", firstname: "Jane", surname: ""},
		{name: "two tokens", in: "Jane Doe", firstname: "Jane", surname: "Doe"},
		{name: "third token dropped", in: "Jane Middle Doe", firstname: "Jane", surname: "Middle"},
		{name: "extra whitespace", in: "  Jane   Doe  ", firstname: "Jane", surname: "Doe"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := Parse(tc.in)
			if n.IsZero() != tc.zero {
				t.Fatalf("Parse(%q).IsZero() = %v, want %v", tc.in, n.IsZero(), tc.zero)
			}
			if n.Firstname() != tc.firstname {
				t.Errorf("firstname = %q, want %q", n.Firstname(), tc.firstname)
			}
			if n.Surname() != tc.surname {
				t.Errorf("surname = %q, want %q", n.Surname(), tc.surname)
			}
		})
	}
}
