package normalization

import "testing"

func TestParseStatusLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"In Progress", "in-progress"},
		{"  in   progress  ", "in-progress"},
		{"Planned", "planned"},
		{"completed", "completed"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseStatusLabel(tc.in); got != tc.want {
			t.Fatalf("ParseStatusLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  MiXeD Case  "); got != "mixed case" {
		t.Fatalf("got %q", got)
	}
}
