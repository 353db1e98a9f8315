package tracker

import (
	"regexp"
)

const packagePattern = `Package:\s*([A-Za-z0-9_.]+)`

var packageRe = regexp.MustCompile(packagePattern)

// FindPackageName returns the name following the first "Package:" marker in body.
func FindPackageName(body string) (string, bool) {
	m := packageRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractPackageName is FindPackageName for callers that require a match.
func ExtractPackageName(body string) (string, error) {
	name, ok := FindPackageName(body)
	if !ok {
		return "", NoMatchError{Pattern: packagePattern}
	}
	return name, nil
}
