package argparse

import (
	"strings"
	"unicode"
)

// TokenKind is the lexical class of one command line token.
type TokenKind int

const (
	BareWord TokenKind = iota
	LongOption
	ShortOption
	ShortCluster
)

func (k TokenKind) String() string {
	switch k {
	case LongOption:
		return "long"
	case ShortOption:
		return "short"
	case ShortCluster:
		return "cluster"
	}
	return "word"
}

// Token is one classified command line argument.
type Token struct {
	Kind TokenKind
	// Name is the option name without dashes; empty for bare words and clusters.
	Name string
	// Names holds the single letter names of a ShortCluster.
	Names []string
	// Value is the inline value given with "=" or glued to a short option.
	Value    string
	HasValue bool
	// Raw is the argument exactly as supplied.
	Raw string
}

// OptionSet reports which kind of option a name is declared as. A nil
// OptionSet declares nothing.
type OptionSet interface {
	Option(name string) (Kind, bool)
}

// terminator ends option processing; every later argument is a bare word.
const terminator = "--"

// Tokenize classifies args against the option names declared in set. It
// is a view of one schema: a parse lexes the arguments after a subcommand
// name against that subcommand's own options instead.
func Tokenize(args []string, set OptionSet) []Token {
	tokens := make([]Token, 0, len(args))
	s := scanner{set: set}
	for _, raw := range args {
		if tok, ok := s.scan(raw); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// scanner lexes arguments one at a time. After the first "--" every
// argument is a bare word.
type scanner struct {
	set     OptionSet
	literal bool // "--" was seen
}

// scan classifies raw. It reports false for the "--" that ends option
// processing, which is not a token.
func (s *scanner) scan(raw string) (Token, bool) {
	if s.literal {
		return Token{Kind: BareWord, Raw: raw}, true
	}
	if raw == terminator {
		s.literal = true
		return Token{}, false
	}
	return lex(raw, s.set), true
}

// lex classifies a single argument.
func lex(raw string, set OptionSet) Token {
	switch {
	case strings.HasPrefix(raw, "--") && len(raw) > 2:
		body := raw[2:]
		if i := strings.IndexByte(body, '='); i > 0 {
			return Token{Kind: LongOption, Name: body[:i], Value: body[i+1:], HasValue: true, Raw: raw}
		}
		return Token{Kind: LongOption, Name: body, Raw: raw}
	case strings.HasPrefix(raw, "-") && len(raw) > 1:
		return lexShort(raw, set)
	}
	return Token{Kind: BareWord, Raw: raw}
}

func lexShort(raw string, set OptionSet) Token {
	body := []rune(raw[1:])
	if !isAlnum(body[0]) {
		return Token{Kind: BareWord, Raw: raw}
	}
	// negative numbers are values unless a digit is declared as an option
	if isNumeric(raw) && !declared(set, string(body[0])) {
		return Token{Kind: BareWord, Raw: raw}
	}
	if i := strings.IndexByte(raw, '='); i > 1 {
		return Token{Kind: ShortOption, Name: raw[1:i], Value: raw[i+1:], HasValue: true, Raw: raw}
	}
	if len(body) == 1 || declared(set, string(body)) {
		return Token{Kind: ShortOption, Name: string(body), Raw: raw}
	}

	names := make([]string, len(body))
	for i, r := range body {
		names[i] = string(r)
	}
	if isCluster(names, set) {
		return Token{Kind: ShortCluster, Names: names, Raw: raw}
	}
	return Token{
		Kind:     ShortOption,
		Name:     names[0],
		Value:    string(body[1:]),
		HasValue: true,
		Raw:      raw,
	}
}

// isCluster reports whether every name is a declared flag, except that the
// last one may be a keyword taking the next token as its value.
func isCluster(names []string, set OptionSet) bool {
	for i, n := range names {
		k, ok := option(set, n)
		if !ok {
			return false
		}
		if k == KindFlag {
			continue
		}
		if k == KindKeyword && i == len(names)-1 {
			continue
		}
		return false
	}
	return true
}

func option(set OptionSet, name string) (Kind, bool) {
	if set == nil {
		return 0, false
	}
	return set.Option(name)
}

func declared(set OptionSet, name string) bool {
	_, ok := option(set, name)
	return ok
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14")
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}

	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
