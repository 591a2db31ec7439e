package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/sebnf/ast"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := ast.Parse("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return f
}

func TestBuild_EndToEnd(t *testing.T) {
	src := `
(* Start attributes *)
(* point : x y *)
(* End attributes *)
instance = point;
point = x y;
x = INTEGER;
y = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	point, ok := m.lookup("point")
	if !ok {
		t.Fatalf("point production not found")
	}
	if !point.IsInstance {
		t.Fatalf("expected point to be an instance")
	}
	if len(point.OwnAttributeNames) != 2 {
		t.Fatalf("expected 2 own attribute names, got %v", point.OwnAttributeNames)
	}
	if len(point.OwnExpressions) != 2 {
		t.Fatalf("expected 2 aligned expressions, got %v", len(point.OwnExpressions))
	}

	instance, _ := m.lookup("instance")
	if !instance.IsSupertype {
		t.Fatalf("expected instance to be a supertype")
	}
	if point.SubtypeOf != instance.ID {
		t.Fatalf("expected point.SubtypeOf == instance.ID")
	}
}

func TestBuild_UndefinedNonTerminal(t *testing.T) {
	f := mustParse(t, `foo = bar;`)
	_, err := NewBuilder(f, "").Build()
	if err == nil {
		t.Fatalf("expected an error for undefined non-terminal")
	}
}

func TestBuild_DuplicateProduction(t *testing.T) {
	f := mustParse(t, `
foo = BAR;
foo = BAZ;
`)
	_, err := NewBuilder(f, "").Build()
	if err == nil {
		t.Fatalf("expected an error for duplicate production")
	}
}

func TestBuild_CommaAlias(t *testing.T) {
	src := `
list = item | list c item;
item = INTEGER;
c = ',';
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	list, ok := m.lookup("list")
	if !ok {
		t.Fatalf("list production not found")
	}
	if list.IsList != ListKindCommaSeparated {
		t.Fatalf("expected comma-separated list, got %v", list.IsList)
	}
}

func TestBuild_CommaAliasUndefined(t *testing.T) {
	src := `list = item | list c item; item = INTEGER;`
	f := mustParse(t, src)
	_, err := NewBuilder(f, "").Build()
	if err == nil {
		t.Fatalf("expected an error when 'c' is used but not defined")
	}
}

func TestBuild_PlainList(t *testing.T) {
	src := `
list = item | list item;
item = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	list, _ := m.lookup("list")
	if list.IsList != ListKindPlain {
		t.Fatalf("expected plain list, got %v", list.IsList)
	}
}

func TestBuild_OptionalChild(t *testing.T) {
	src := `
wrapper = child | '$' ;
child = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	wrapper, _ := m.lookup("wrapper")
	child, _ := m.lookup("child")
	if wrapper.OptionalRole != OptionalRoleParentOfOther {
		t.Fatalf("expected wrapper to be an optional parent of a non-instance, got %v", wrapper.OptionalRole)
	}
	if child.OptionalRole != OptionalRoleChild {
		t.Fatalf("expected child to be an optional child")
	}
	if wrapper.TransferName != "child" {
		t.Fatalf("unexpected transfer name: %v", wrapper.TransferName)
	}
}

func TestBuild_OptionalInstanceChild(t *testing.T) {
	src := `
optDirection = direction | '$' ;
instance = direction;
direction = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	optDirection, _ := m.lookup("optDirection")
	direction, _ := m.lookup("direction")
	if optDirection.OptionalRole != OptionalRoleParentOfInstanceOrSupertype {
		t.Fatalf("expected optDirection to be a parent of an instance, got %v", optDirection.OptionalRole)
	}
	if optDirection.TransferName != "direction" {
		t.Fatalf("unexpected transfer name: %v", optDirection.TransferName)
	}
	if direction.OptProd != optDirection.ID {
		t.Fatalf("expected direction.OptProd == optDirection.ID")
	}
}

func TestBuild_EmissionOrderSupertypeBeforeSubtype(t *testing.T) {
	src := `
instance = circle | square;
circle = INTEGER;
square = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	pos := map[string]int{}
	for i, id := range m.EmissionOrder {
		pos[m.production(id).Name] = i
	}
	if pos["instance"] >= pos["circle"] {
		t.Fatalf("expected instance before circle in emission order: %v", pos)
	}
	if pos["instance"] >= pos["square"] {
		t.Fatalf("expected instance before square in emission order: %v", pos)
	}
}

func TestBuild_InstanceRoleIsImmediateSubtypesOnly(t *testing.T) {
	src := `
instance = point;
point = x;
x = INTEGER;
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	instance, _ := m.lookup("instance")
	point, _ := m.lookup("point")
	x, _ := m.lookup("x")
	if instance.IsInstance {
		t.Fatalf("instance itself must not have IsInstance set")
	}
	if !point.IsInstance {
		t.Fatalf("expected point (immediate subtype of instance) to be an instance")
	}
	if x.IsInstance {
		t.Fatalf("x is not a subtype of instance at all, must not be marked IsInstance")
	}
	if instance.BeInstance != 0 {
		t.Fatalf("instance's own BeInstance must stay unset, got %v", instance.BeInstance)
	}
}

func TestBuild_AttributeMismatch(t *testing.T) {
	src := `
(* Start attributes *)
(* point : a b : a z *)
(* End attributes *)
instance = point;
point = x y;
x = INTEGER;
y = INTEGER;
`
	f := mustParse(t, src)
	_, err := NewBuilder(f, "").Build()
	if err == nil {
		t.Fatalf("expected an attribute-name mismatch error")
	}
}

func TestBuild_CommaSingletonIdentity(t *testing.T) {
	src := `
list = item | list c item;
pairs = item | pairs c item;
item = INTEGER;
c = ',';
`
	f := mustParse(t, src)
	m, err := NewBuilder(f, "").Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if m.CommaExpr == nil {
		t.Fatalf("expected Model.CommaExpr to be set")
	}
	if _, ok := m.lookup("c"); ok {
		t.Fatalf("expected the 'c' production not to be retained in the model")
	}

	list, _ := m.lookup("list")
	pairs, _ := m.lookup("pairs")
	listComma := list.Defs[1].Expressions[1]
	pairsComma := pairs.Defs[1].Expressions[1]
	if listComma != m.CommaExpr || pairsComma != m.CommaExpr {
		t.Fatalf("expected every comma-alias occurrence to be the same Expression value")
	}
}
