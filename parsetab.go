package parsetab

import "fmt"

// --- Input tokens ----------------------------------------------------------

// TokType is a category type for a Token. Tokenizers of package scanner
// define their own constants.
type TokType int

// Token represents an input token. Tokens are produced by a tokenizer and
// are matched against the terminals of a grammar by their lexeme.
//
// An example would be a token for an identifier:
//
//    TokType = Ident       // identifier for this kind of tokens (tokenizer specific)
//    Lexeme  = "id"        // lexeme how it appeared in the input stream, matches terminal 'id'
//    Value   = nil         // optional value, set by the tokenizer
//    Span    = 4…6         // occured from position 4 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the empty span (0…0).
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
