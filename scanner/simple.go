package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/parsetab"
)

// Mode selects a tokenizer for an input string.
type Mode int

// Tokenizing modes.
const (
	Auto   Mode = iota // Fields if the input contains whitespace, Chars otherwise
	Fields             // whitespace separated symbols
	Chars              // one symbol per character
	Go                 // Go-like tokens, see GoTokenizer
)

var modeNames = []string{"auto", "fields", "chars", "go"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the tokenizing mode for a name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return Auto, fmt.Errorf("unknown tokenizing mode %q", name)
}

// Tokenize creates a tokenizer for input, according to mode.
func Tokenize(mode Mode, input string) Tokenizer {
	if mode == Auto {
		if strings.IndexFunc(input, unicode.IsSpace) >= 0 {
			mode = Fields
		} else {
			mode = Chars
		}
	}
	tracer().Debugf("tokenizing input in mode %s", mode)
	switch mode {
	case Fields:
		return FieldTokenizer(input)
	case Go:
		return GoTokenizer("input", strings.NewReader(input), SkipComments(true))
	}
	return CharTokenizer(input)
}

// SliceScanner is a tokenizer over a pre-computed list of tokens.
type SliceScanner struct {
	tokens []parsetab.Token
	pos    int
	end    uint64
	Error  func(error)
}

var _ Tokenizer = (*SliceScanner)(nil)

// SetErrorHandler is part of the Tokenizer interface. Slice scanners do not
// produce errors.
func (s *SliceScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	s.Error = h
}

// NextToken is part of the Tokenizer interface.
func (s *SliceScanner) NextToken() parsetab.Token {
	if s.pos >= len(s.tokens) {
		return MakeDefaultToken(EOF, "", parsetab.Span{s.end, s.end})
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// FieldTokenizer creates a tokenizer which splits input at whitespace.
// Every field is a token of type Ident.
func FieldTokenizer(input string) *SliceScanner {
	s := &SliceScanner{Error: logError, end: uint64(len(input))}
	start := -1
	for i, r := range input {
		if unicode.IsSpace(r) {
			if start >= 0 {
				s.tokens = append(s.tokens, field(input, start, i))
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		s.tokens = append(s.tokens, field(input, start, len(input)))
	}
	return s
}

func field(input string, from, to int) parsetab.Token {
	return MakeDefaultToken(Ident, input[from:to], parsetab.Span{uint64(from), uint64(to)})
}

// CharTokenizer creates a tokenizer which produces a token for every
// character of input. Whitespace is skipped. The token type of a token is
// the character itself.
func CharTokenizer(input string) *SliceScanner {
	s := &SliceScanner{Error: logError, end: uint64(len(input))}
	for i, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		span := parsetab.Span{uint64(i), uint64(i + utf8.RuneLen(r))}
		s.tokens = append(s.tokens, MakeDefaultToken(parsetab.TokType(r), string(r), span))
	}
	return s
}
