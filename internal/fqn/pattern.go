package fqn

import (
	"regexp"
	"sync"
	"unicode/utf8"
)

// expr accepts the same segments as name.New: a letter followed by letters,
// digits or underscores. The leaf may also be a lone underscore.
const expr = `^(?:[a-zA-Z][_a-zA-Z0-9]*\.)*(?:[a-zA-Z][_a-zA-Z0-9]*|_\b)`

// Pattern returns the compiled recognizer for FQN-shaped tokens. It is
// anchored at the start of the input only and prefers the longest match.
// The returned value is shared and must not be modified.
var Pattern = sync.OnceValue(func() *regexp.Regexp {
	re := regexp.MustCompile(expr)
	re.Longest()
	return re
})

// Recognize returns the longest FQN-shaped prefix of text.
func Recognize(text string) (string, bool) {
	loc := Pattern().FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[:loc[1]], true
}

// Match is one FQN-shaped token found by Scan.
type Match struct {
	Offset int
	Text   string
}

// Scan finds every FQN-shaped token in text. A token starts only where the
// preceding byte is neither an identifier character nor a dot, so "x.y" in
// "1.x.y" or "ab" in "_ab" are not reported. Non-ASCII letters continue a
// word, so nothing in "héllo" is reported either.
func Scan(text string) []Match {
	var matches []Match
	for i := 0; i < len(text); {
		if i > 0 && continuesToken(text[i-1]) {
			i++
			continue
		}
		tok, ok := Recognize(text[i:])
		if !ok {
			i++
			continue
		}
		// A match cut short by a non-ASCII letter is the head of a longer word.
		if end := i + len(tok); end == len(text) || text[end] < utf8.RuneSelf {
			matches = append(matches, Match{Offset: i, Text: tok})
		}
		i += len(tok)
	}
	return matches
}

func continuesToken(b byte) bool {
	return b >= utf8.RuneSelf || b == '.' || b == '_' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
