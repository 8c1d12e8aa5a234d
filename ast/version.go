package ast

import (
	"regexp"

	"golang.org/x/mod/semver"
)

const (
	// GrammarVersion is the Python grammar the variant set is pinned to.
	GrammarVersion = "3.12"
	// MinGrammarVersion is the oldest interpreter whose trees convert.
	MinGrammarVersion = "3.9"
	// MaxGrammarVersion is the newest interpreter whose trees convert; its
	// additions are covered by version gated fields.
	MaxGrammarVersion = "3.13"
)

var versionExpr = regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+))?`)

// CanonicalVersion converts a Python version such as "3.12.1" or "3.13.0rc1"
// into a semantic version ("v3.12.1", "v3.13.0"); it returns "" when v is not a version.
func CanonicalVersion(v string) string {
	match := versionExpr.FindStringSubmatch(v)
	if match == nil {
		return ""
	}
	patch := match[3]
	if patch == "" {
		patch = "0"
	}
	return semver.Canonical("v" + match[1] + "." + match[2] + "." + patch)
}

// CompareVersions compares two Python versions; invalid versions sort first.
func CompareVersions(a, b string) int {
	return semver.Compare(CanonicalVersion(a), CanonicalVersion(b))
}

// SupportedVersion reports whether trees of interpreter version v convert.
func SupportedVersion(v string) bool {
	minor := semver.MajorMinor(CanonicalVersion(v))
	if minor == "" {
		return false
	}
	return semver.Compare(minor, "v"+MinGrammarVersion) >= 0 && semver.Compare(minor, "v"+MaxGrammarVersion) <= 0
}

// ExistsIn reports whether the field is part of the grammar of version v.
// Fields are assumed present when v is unknown.
func (f *FieldSchema) ExistsIn(v string) bool {
	if f.Since == "" || v == "" {
		return true
	}
	return CompareVersions(v, f.Since) >= 0
}
