package ast

import (
	"strings"
	"testing"
)

func TestParse_SimpleProduction(t *testing.T) {
	src := `foo = BAR baz 'x';`

	f, err := Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Productions) != 1 {
		t.Fatalf("expected 1 production, got %v", len(f.Productions))
	}

	p := f.Productions[0]
	if p.Name != "foo" {
		t.Fatalf("unexpected name: %v", p.Name)
	}
	if len(p.Defs) != 1 {
		t.Fatalf("expected 1 definition, got %v", len(p.Defs))
	}

	elems := p.Defs[0].Elements
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %v", len(elems))
	}
	if elems[0].Kind != ElementKindKeyword || elems[0].Text != "BAR" {
		t.Fatalf("unexpected element 0: %+v", elems[0])
	}
	if elems[1].Kind != ElementKindNonTerminal || elems[1].Text != "baz" {
		t.Fatalf("unexpected element 1: %+v", elems[1])
	}
	if elems[2].Kind != ElementKindOneChar || elems[2].Text != "x" {
		t.Fatalf("unexpected element 2: %+v", elems[2])
	}
}

func TestParse_Alternatives(t *testing.T) {
	src := `foo = a | b | c;`

	f, err := Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := f.Productions[0]
	if len(p.Defs) != 3 {
		t.Fatalf("expected 3 definitions, got %v", len(p.Defs))
	}
	if p.Defs[2].Elements[0].Kind != ElementKindComma {
		t.Fatalf("expected bare 'c' to be classified as comma alias, got %v", p.Defs[2].Elements[0].Kind)
	}
}

func TestParse_TerminalVocabulary(t *testing.T) {
	src := `foo = INTEGER REAL STRING IDENTIFIER OTHERKEYWORD;`

	f, err := Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems := f.Productions[0].Defs[0].Elements
	for _, want := range []ElementKind{ElementKindTerminal, ElementKindTerminal, ElementKindTerminal, ElementKindTerminal, ElementKindKeyword} {
		if elems[0].Kind != want {
			t.Fatalf("unexpected kind for %v: got %v, want %v", elems[0].Text, elems[0].Kind, want)
		}
		elems = elems[1:]
	}
}

func TestParse_LiteralClassification(t *testing.T) {
	tests := []struct {
		lit  string
		kind ElementKind
	}{
		{"x", ElementKindOneChar},
		{"Aa", ElementKindTwoChar},
		{"aA", ElementKindTwoChar},
		{"ab", ElementKindTerminalString},
		{"abc", ElementKindTerminalString},
	}
	for _, tt := range tests {
		src := "foo = '" + tt.lit + "';"
		f, err := Parse("", strings.NewReader(src))
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.lit, err)
		}
		got := f.Productions[0].Defs[0].Elements[0].Kind
		if got != tt.kind {
			t.Errorf("%v: got %v, want %v", tt.lit, got, tt.kind)
		}
	}
}

func TestParse_AttributeBlock(t *testing.T) {
	src := `
(* Start attributes *)
(* foo : a b c *)
(* bar : a b : full_a full_b *)
(* End attributes *)
foo = a b c;
`
	f, err := Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.AttributeLines) != 2 {
		t.Fatalf("expected 2 attribute lines, got %v", len(f.AttributeLines))
	}
	if f.AttributeLines[0].ProductionName != "foo" {
		t.Fatalf("unexpected production name: %v", f.AttributeLines[0].ProductionName)
	}
	if len(f.AttributeLines[0].OwnNames) != 3 {
		t.Fatalf("unexpected own names: %v", f.AttributeLines[0].OwnNames)
	}
	if f.AttributeLines[1].FullNames == nil || len(f.AttributeLines[1].FullNames) != 2 {
		t.Fatalf("unexpected full names: %v", f.AttributeLines[1].FullNames)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		`foo bar;`,
		`foo = ;`,
		`foo = a`,
		`foo = 'x`,
	}
	for _, src := range tests {
		_, err := Parse("", strings.NewReader(src))
		if err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}
