package version

import (
	"fmt"
	"strings"
)

// CheckCatalog compares the catalog's declared version with the version a
// project pins in its configuration. It returns a warning message, or "" when
// nothing is pinned or the major.minor portions agree.
func CheckCatalog(expected, actual string) string {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return ""
	}
	if semverPrefix(expected) == "" {
		return fmt.Sprintf("expected catalog version %q is not in major.minor form", expected)
	}
	if semverPrefix(actual) == "" {
		return fmt.Sprintf("catalog version %q is not in major.minor form; expected %s", actual, expected)
	}
	if !CompareMajorMinor(expected, actual) {
		return fmt.Sprintf("catalog version mismatch: expected %s but catalog declares %s", expected, actual)
	}
	return ""
}

// CompareMajorMinor compares major.minor portions of two semver-like versions.
func CompareMajorMinor(desired, actual string) bool {
	d := semverPrefix(desired)
	a := semverPrefix(actual)
	if d == "" || a == "" {
		return false
	}
	return strings.EqualFold(d, a)
}

func semverPrefix(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	parts := strings.Split(version, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return fmt.Sprintf("%s.%s", parts[0], parts[1])
}
