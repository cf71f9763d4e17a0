package command

import (
	"strings"
	"unicode"
)

// ParseResult holds a normalized command word and anything typed after it.
type ParseResult struct {
	// Word is the first word of the input, lowercased.
	Word string
	// Extra holds the remaining words. Navigation commands take none, so a
	// non-empty Extra is reported back to the player rather than ignored.
	Extra []string
}

// Parse normalizes one line of player input.
//
// Postcondition: Returns a ParseResult. If line is blank, Word is empty.
func Parse(line string) ParseResult {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	if len(fields) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Word: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		res.Extra = fields[1:]
	}
	return res
}
