package pageguides

import (
	"regexp"
	"strings"
)

// IsPattern reports whether a stored page path holds dynamic segments.
func IsPattern(pagePath string) bool {
	return strings.ContainsAny(pagePath, ":*")
}

// compilePattern turns "/activity/detail/:id" into ^/activity/detail/[^/]+$.
// A ":name" runs to the end of its segment and "*" matches anything,
// slashes included.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i, segment := range strings.Split(pattern, "/") {
		if i > 0 {
			b.WriteString("/")
		}
		if idx := strings.Index(segment, ":"); idx >= 0 {
			b.WriteString(quoteWildcards(segment[:idx]))
			b.WriteString("[^/]+")
			continue
		}
		b.WriteString(quoteWildcards(segment))
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func quoteWildcards(literal string) string {
	parts := strings.Split(literal, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, ".*")
}

// MatchPath reports whether pagePath is covered by pattern.
func MatchPath(pattern, pagePath string) bool {
	if !IsPattern(pattern) {
		return pattern == pagePath
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(pagePath)
}

// normalizePath trims whitespace, ensures a leading slash and drops a
// trailing one.
func normalizePath(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
