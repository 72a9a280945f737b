package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func lexemes(t Tokenizer) []string {
	var l []string
	for _, tok := range Drain(t) {
		l = append(l, tok.Lexeme())
	}
	return l
}

func TestModes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.scanner")
	defer teardown()
	//
	testCases := []struct {
		mode   Mode
		input  string
		expect []string
	}{
		{Auto, "id + id * id", []string{"id", "+", "id", "*", "id"}},
		{Auto, "cdd", []string{"c", "d", "d"}},
		{Auto, "", nil},
		{Fields, "  ( id )  ", []string{"(", "id", ")"}},
		{Chars, "a b", []string{"a", "b"}},
		{Go, "id+id*(id)", []string{"id", "+", "id", "*", "(", "id", ")"}},
	}
	for _, tc := range testCases {
		t.Run(tc.mode.String()+":"+tc.input, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, lexemes(Tokenize(tc.mode, tc.input)))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Fields")
	if err != nil || m != Fields {
		t.Errorf("expected mode 'fields', got %v (%v)", m, err)
	}
	if _, err = ParseMode("words"); err == nil {
		t.Errorf("expected unknown mode to be rejected")
	}
}

func TestEOFIsSticky(t *testing.T) {
	s := FieldTokenizer("a")
	s.NextToken()
	for i := 0; i < 2; i++ {
		if tok := s.NextToken(); tok.TokType() != EOF {
			t.Errorf("expected EOF after end of input, got %v", tok)
		}
	}
	if tok := CharTokenizer("xy").NextToken(); tok.TokType() != 'x' || tok.Span().Len() != 1 {
		t.Errorf("expected token 'x' of length 1, got %v", tok)
	}
}
