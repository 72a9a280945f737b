/*
Package scanner defines an interface for tokenizers to be used with the parse
drivers of packages ll1 and lr/clr.

Parse drivers match tokens against the terminals of a grammar by their lexeme.
Three simple tokenizers are provided: one splitting the input at whitespace,
one producing a token for every single character, and a thin wrapper over the
Go std lib 'text/scanner'. An adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. After the end of input has been reached,
// NextToken returns tokens of type EOF.
type Tokenizer interface {
	NextToken() parsetab.Token
	SetErrorHandler(func(error))
}

// Drain reads tokens from t until EOF. The EOF token is not included.
func Drain(t Tokenizer) []parsetab.Token {
	var tokens []parsetab.Token
	for {
		tok := t.NextToken()
		if tok.TokType() == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	tracer().Debugf("drained %d tokens from input", len(tokens))
	return tokens
}

// GoScanner is a tokenizer backed by scanner.Scanner.
// Create one with GoTokenizer.
type GoScanner struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*GoScanner)(nil)

// Default error reporting function for tokenizers
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a tokenizer accepting tokens similar to the Go language.
// Identifiers, numbers and strings form a single token each, all other
// characters are tokens of their own.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	t := &GoScanner{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *GoScanner) NextToken() parsetab.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("Go tokenizer reached end of input")
		return MakeDefaultToken(EOF, "", parsetab.Span{})
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   parsetab.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   parsetab.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by all the
// tokenizers of this package as well as by the LexMachine scanner.
type DefaultToken struct {
	kind   parsetab.TokType
	lexeme string
	Val    interface{}
	span   parsetab.Span
}

// MakeDefaultToken creates a token from its type, lexeme and span.
func MakeDefaultToken(typ parsetab.TokType, lexeme string, span parsetab.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() parsetab.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() parsetab.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q%s", t.lexeme, t.span)
}

// --- Scanner options for the Go tokenizer ----------------------------------

// Option configures a Go tokenizer.
type Option func(p *GoScanner)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *GoScanner) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *GoScanner) {
		t.unifyStrings = b
	}
}
