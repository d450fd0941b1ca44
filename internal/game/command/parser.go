package command

import "strings"

// ParseResult holds the verb and noun parsed from a text line.
type ParseResult struct {
	// Verb is the first word of the input, uppercased.
	Verb string
	// Noun is the second word of the input as typed. Empty when absent.
	Noun string
}

// Empty reports whether the line contained no words.
func (p ParseResult) Empty() bool {
	return p.Verb == ""
}

// HasNoun reports whether a noun was given.
func (p ParseResult) HasNoun() bool {
	return p.Noun != ""
}

// Parse splits a text line into a verb and a noun. Words after the second are
// ignored; multi-word nouns are not supported.
//
// Postcondition: Returns an Empty result for a blank line.
func Parse(line string) ParseResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	result := ParseResult{Verb: strings.ToUpper(fields[0])}
	if len(fields) > 1 {
		result.Noun = fields[1]
	}
	return result
}

// shortcuts maps single-letter verbs to their expansion. An empty noun keeps
// the typed noun.
var shortcuts = map[string]ParseResult{
	"N": {Verb: VerbGo, Noun: "NORTH"},
	"S": {Verb: VerbGo, Noun: "SOUTH"},
	"W": {Verb: VerbGo, Noun: "WEST"},
	"E": {Verb: VerbGo, Noun: "EAST"},
	"U": {Verb: VerbGo, Noun: "UP"},
	"D": {Verb: VerbGo, Noun: "DOWN"},
	"I": {Verb: VerbInventory},
	"L": {Verb: VerbLook},
}

// Expand rewrites single-letter shortcuts: N,S,W,E,U,D become GO <direction>,
// I becomes INVENTORY and L becomes LOOK (keeping any noun).
//
// Postcondition: non-shortcut results are returned unchanged.
func Expand(p ParseResult) ParseResult {
	exp, ok := shortcuts[p.Verb]
	if !ok {
		return p
	}
	if exp.Noun == "" {
		exp.Noun = p.Noun
	}
	return exp
}
