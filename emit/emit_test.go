package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nihei9/sebnf/ast"
	"github.com/nihei9/sebnf/grammar"
)

func buildModel(t *testing.T, src string) *grammar.Model {
	t.Helper()
	f, err := ast.Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	m, err := grammar.NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return m
}

func TestClassWriter_WriteClasses(t *testing.T) {
	m := buildModel(t, `
instance = circle | square;
circle = INTEGER;
square = INTEGER;
`)

	var hh, cc bytes.Buffer
	w := &ClassWriter{Model: m}
	if err := w.WriteClasses(&hh, &cc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hh.String(), "class circle : public instance") {
		t.Fatalf("expected circle to inherit instance, got:\n%v", hh.String())
	}
	if !strings.Contains(hh.String(), "class instance {") {
		t.Fatalf("expected instance base class, got:\n%v", hh.String())
	}
}

func TestGrammarWriter_WriteGrammar(t *testing.T) {
	m := buildModel(t, `
instance = circle;
circle = INTEGER;
`)

	var buf bytes.Buffer
	w := &GrammarWriter{Model: m}
	if err := w.WriteGrammar(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "circle") {
		t.Fatalf("expected rule for circle, got:\n%v", buf.String())
	}
}
