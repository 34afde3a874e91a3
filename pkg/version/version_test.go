package version

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"2.12.0", "2.12.0", 0},
		{"2.12", "2.12.0", 0},
		{"2.12.0", "2.12", 0},
		{"2.9.0", "2.12.0", -1},
		{"10.0.0", "9.0.0", 1},
		{"1", "1.0.0", 0},
	}
	for _, c := range cases {
		got, err := Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("Compare(%q, %q) error: %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareMalformed(t *testing.T) {
	for _, bad := range []string{"2.x.0", "abc", ""} {
		_, err := Compare(bad, "1.0.0")
		if err == nil {
			t.Fatalf("Compare(%q, ...) expected error", bad)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Compare(%q, ...) error is %T, want *ParseError", bad, err)
		}
	}
}

func TestInRange(t *testing.T) {
	cases := []struct {
		name     string
		v        string
		min, max string
		want     bool
	}{
		{"inside both bounds", "1.5.0", "1.0.0", "2.0.0", true},
		{"below min", "0.9.0", "1.0.0", "2.0.0", false},
		{"above max", "2.1.0", "1.0.0", "2.0.0", false},
		{"equals min", "1.0.0", "1.0.0", "2.0.0", true},
		{"equals max", "2.0.0", "1.0.0", "2.0.0", true},
		{"min only, above", "3.0.0", "2.12.0", "", true},
		{"min only, below", "2.11.0", "2.12.0", "", false},
		{"max only, below", "1.0.0", "", "2.0.0", true},
		{"max only, above", "2.0.1", "", "2.0.0", false},
		{"no bounds", "0.0.1", "", "", true},
		{"padded equals min", "2.12", "2.12.0", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := InRange(c.v, c.min, c.max)
			if err != nil {
				t.Fatalf("InRange(%q, %q, %q) error: %v", c.v, c.min, c.max, err)
			}
			if got != c.want {
				t.Errorf("InRange(%q, %q, %q) = %v, want %v", c.v, c.min, c.max, got, c.want)
			}
		})
	}
}

func TestInRangeMalformedVersion(t *testing.T) {
	if _, err := InRange("not-a-version", "1.0.0", ""); err == nil {
		t.Fatal("expected parse error for malformed version")
	}
	if _, err := InRange("1.0.0", "bogus", ""); err == nil {
		t.Fatal("expected parse error for malformed bound")
	}
}
