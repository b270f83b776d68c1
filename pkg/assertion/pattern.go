package assertion

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const patternCacheSize = 128

var patternCache = newPatternCache()

func newPatternCache() *lru.Cache[string, *regexp.Regexp] {
	cache, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

// parseRegexLiteral splits a "/pattern/flags" literal into a Go
// pattern with the flags folded in as an inline group. Only the
// i, m and s flags are accepted, each at most once, and a slash
// inside the pattern must be escaped or sit in a character class.
// Anything else, such as the path "/usr/bin/sim", is not a
// literal.
func parseRegexLiteral(s string) (string, bool) {
	if len(s) < 2 || s[0] != '/' {
		return "", false
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return "", false
	}

	pattern, flags := s[1:end], s[end+1:]
	if strings.Trim(flags, "ims") != "" || duplicateFlag(flags) {
		return "", false
	}
	if hasBareSlash(pattern) {
		return "", false
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	return pattern, true
}

func duplicateFlag(flags string) bool {
	for i := range flags {
		if strings.IndexByte(flags[i+1:], flags[i]) >= 0 {
			return true
		}
	}
	return false
}

// hasBareSlash reports an unescaped '/' outside a character class.
func hasBareSlash(pattern string) bool {
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return true
			}
		}
	}
	return false
}

// compilePattern compiles a pattern, reusing recently compiled
// expressions. Polling evaluates the same pattern on every
// attempt.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Add(pattern, re)
	return re, nil
}
