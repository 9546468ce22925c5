package validate

import "testing"

func TestURLSafe(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"simple", "requests", true},
		{"withDotsAndDashes", "zope.interface", true},
		{"underscore", "typing_extensions", true},
		{"empty", "", false},
		{"traversal", "../../etc/passwd", false},
		{"slash", "foo/bar", false},
		{"query", "foo?x=1", false},
		{"fragment", "foo#frag", false},
		{"percentEncoded", "foo%2e%2e", false},
		{"tooLong", stringOfLen(250), false},
		{"leadingDot", ".hidden", false},
		{"trailingDash", "foo-", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := URLSafe(tc.in)
			if ok != tc.ok {
				t.Fatalf("URLSafe(%q) = %v (%s), want %v", tc.in, ok, reason, tc.ok)
			}
		})
	}
}

func TestShellSafe(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"simple", "requests", true},
		{"versionedLookAlike", "django-rest-framework", true},
		{"empty", "", false},
		{"semicolon", "foo;rm -rf /", false},
		{"backtick", "foo`whoami`", false},
		{"dollarParen", "foo$(whoami)", false},
		{"pipe", "foo|cat", false},
		{"space", "foo bar", false},
		{"redirect", "foo>bar", false},
		{"newline", "foo\nrm -rf /", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := ShellSafe(tc.in)
			if ok != tc.ok {
				t.Fatalf("ShellSafe(%q) = %v (%s), want %v", tc.in, ok, reason, tc.ok)
			}
		})
	}
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
