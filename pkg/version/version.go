// Package version compares dotted OpenSearch version strings and checks
// them against inclusive [min, max] ranges.
package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// ParseError indicates a version string that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parse(s string) (*goversion.Version, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return nil, &ParseError{Input: s, Err: err}
	}
	return v, nil
}

// Compare returns -1, 0 or 1 if a is less than, equal to or greater than b.
// Components are compared numerically; missing trailing components count as
// zero, so "2.12" equals "2.12.0".
func Compare(a, b string) (int, error) {
	va, err := parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// InRange reports whether v falls inside the inclusive range [min, max].
// An empty bound is unbounded on that side; both empty means always true.
func InRange(v, min, max string) (bool, error) {
	ver, err := parse(v)
	if err != nil {
		return false, err
	}
	if min != "" {
		lo, err := parse(min)
		if err != nil {
			return false, err
		}
		if ver.LessThan(lo) {
			return false, nil
		}
	}
	if max != "" {
		hi, err := parse(max)
		if err != nil {
			return false, err
		}
		if ver.GreaterThan(hi) {
			return false, nil
		}
	}
	return true, nil
}
