package grammar

import (
	"bytes"
	"testing"
)

func TestEBNF(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	g, _ := b.Grammar()
	if err := Verify(g); err != nil {
		t.Errorf("expected grammar to verify, got %v", err)
	}
	var buf bytes.Buffer
	WriteEBNF(&buf, g)
	expected := "S = A \"x\" .\nA = \"a\" | \"\" .\n"
	if buf.String() != expected {
		t.Errorf("unexpected EBNF output:\n%s", buf.String())
	}
}

func TestVerifyFails(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.LHS("S").T("s").End()
	b.LHS("U").T("u").End() // unreachable
	g, _ := b.Grammar()
	if err := Verify(g); err == nil {
		t.Errorf("expected unreachable non-terminal to fail verification")
	}
	b = NewGrammarBuilder("G")
	b.NonTerminals("S", "X")
	b.LHS("S").N("X").End()
	g, _ = b.Grammar()
	if err := Verify(g); err == nil {
		t.Errorf("expected non-terminal without productions to fail verification")
	}
}
