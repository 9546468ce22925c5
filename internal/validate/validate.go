// Package validate implements two trust-boundary checks: a name must
// pass the URL-safe validator before it is used to build an Index Client
// request, and it must pass the shell-safe validator before it is handed
// to an installer. Both are pure functions; neither performs I/O.
package validate

import "regexp"

var (
	urlSafeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,198}[A-Za-z0-9]$`)
	// installerNameRe approximates the PEP 508 distribution-name grammar:
	// letters/digits, with '.', '-', '_' as internal separators.
	installerNameRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	urlUnsafeChars  = "/?#&=" // plus ".." checked separately below
	shellMetaChars  = ";&|`$(){}<>\n\r"
)

// URLSafe reports whether name may be interpolated into an Index Client
// URL. It rejects path-traversal attempts, URL-reserved characters, and
// names outside the length/charset grammar, even when name originates
// from a trusted static table.
func URLSafe(name string) (bool, string) {
	if name == "" {
		return false, "name is empty"
	}
	if len(name) > 200 {
		return false, "name exceeds 200 characters"
	}
	if !urlSafeRe.MatchString(name) {
		return false, "name does not match the URL-safe grammar"
	}
	if containsAny(name, "..") {
		return false, "name contains a path traversal sequence"
	}
	if containsAnyByte(name, urlUnsafeChars) {
		return false, "name contains a URL-reserved character"
	}
	if containsAnyByte(name, "%") {
		return false, "name contains a percent-encoding character"
	}
	return true, ""
}

// ShellSafe reports whether name may be passed as an argument to the
// (out-of-scope) installer subprocess. It rejects shell metacharacters and
// whitespace in addition to requiring the PEP 508 grammar.
func ShellSafe(name string) (bool, string) {
	if name == "" {
		return false, "name is empty"
	}
	if !installerNameRe.MatchString(name) {
		return false, "name does not match the distribution-name grammar"
	}
	if containsAnyByte(name, shellMetaChars) {
		return false, "name contains a shell metacharacter"
	}
	if containsWhitespace(name) {
		return false, "name contains whitespace"
	}
	return true, ""
}

func containsAny(s, substr string) bool {
	return len(substr) > 0 && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

func containsAnyByte(s, chars string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return true
			}
		}
	}
	return false
}

func containsWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return true
		}
	}
	return false
}
