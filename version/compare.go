// Package version checks whether a newer djecho release is out.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

type semver [3]int

func parse(s string) (semver, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	// pre-release and build suffixes do not take part in the comparison
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return semver{}, fmt.Errorf("invalid version %q", s)
	}

	var v semver
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return semver{}, fmt.Errorf("invalid version %q", s)
		}
		v[i] = n
	}
	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}
	return 0, nil
}
