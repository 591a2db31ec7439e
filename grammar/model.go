package grammar

import "github.com/nihei9/sebnf/ast"

// ExpressionKind is the resolved counterpart of ast.ElementKind: once
// binding has run, a NonTerminal expression additionally carries the
// handle of the production it refers to.
type ExpressionKind int

const (
	ExpressionKindInvalid ExpressionKind = iota
	ExpressionKindKeyword
	ExpressionKindNonTerminal
	ExpressionKindTerminal
	ExpressionKindOneChar
	ExpressionKindTwoChar
	ExpressionKindTerminalString
)

// ListKind classifies a production's shape, computed at construction
// time from its two-definition left-recursive form.
type ListKind int

const (
	ListKindNone ListKind = iota
	ListKindPlain
	ListKindCommaSeparated
)

// OptionalRole records which side of an `x = y | '$' ;`-shaped pair a
// production plays, or OptionalRoleNone if it isn't part of one.
type OptionalRole int

const (
	OptionalRoleNone OptionalRole = iota
	// OptionalRoleParentOfInstanceOrSupertype is an optional parent whose
	// child is itself an instance, or has an instance descendant.
	OptionalRoleParentOfInstanceOrSupertype
	// OptionalRoleParentOfOther is an optional parent whose child never
	// resolves to an instance.
	OptionalRoleParentOfOther
	// OptionalRoleChild is the non-'$' alternative's target.
	OptionalRoleChild
)

// productionID is a stable handle into Model.productions. The zero value
// means "no production" (nil).
type productionID int

// Expression is one element of a Definition, after binding.
type Expression struct {
	Kind ExpressionKind
	Text string

	// Production is set when Kind is ExpressionKindNonTerminal and
	// binding resolved it to a production. It is zero for every other
	// kind; a NonTerminal that names no production fails binding.
	Production productionID

	Pos ast.Position
}

// Definition is one alternative of a Production's right-hand side.
type Definition struct {
	Expressions []*Expression
	Pos         ast.Position
}

// Production is one named rule of the grammar, fully annotated once all
// analysis passes have run.
type Production struct {
	ID   productionID
	Name string
	Defs []*Definition
	Pos  ast.Position

	// IsList is ListKindNone unless this production has exactly the
	// shape of a list: two definitions, one of which is a
	// left-recursive extension of the other.
	IsList ListKind

	// IsSupertype is true when this production is not a list, every
	// definition of it is a single NonTerminal expression naming a
	// subtype, and it has at least two definitions (the root "instance"
	// needs only one). Distinctness of the subtypes is not checked.
	IsSupertype bool

	// SubtypeOf is the supertype production this one is a direct
	// subtype of, or zero if none.
	SubtypeOf productionID

	// Ancestors is the transitive closure of SubtypeOf, nearest first,
	// leaving out the root production "instance".
	Ancestors []productionID

	// IsInstance is true only for the immediate subtypes of the
	// distinguished root production "instance". No other production
	// has IsInstance set.
	IsInstance bool

	// BeInstance is set on an ancestor P of some instance production Q
	// (P ∈ Q.Ancestors), pointing at the first such Q in declaration
	// order, and is
	// left zero on instance productions themselves — they do not also
	// receive a BeInstance value.
	BeInstance productionID

	// OptionalRole classifies this production's part in an `x = y | '$' ;`
	// pair, see OptionalRole.
	OptionalRole OptionalRole

	// OptProd is the counterpart production: for a parent, the child;
	// for a child, the parent.
	OptProd productionID

	// TransferName is set on an optional parent by classifyOptionals:
	// the child's own name, or, when the child is not an instance but
	// has an instance descendant, the name of the first instance
	// production (in declaration order) descending from it.
	TransferName string

	// OwnAttributeNames are this production's own attributes, read from
	// the `(* Start/End attributes *)` comment block, defaulting to
	// nil when the production isn't listed there.
	OwnAttributeNames []string

	// OwnExpressions aligns 1:1 with OwnAttributeNames: the expression
	// each own attribute name was matched against.
	OwnExpressions []*Expression

	// FullAttributeNames is every ancestor's own attribute names,
	// farthest ancestor first, followed by OwnAttributeNames, unless the
	// attribute block gave an explicit override.
	FullAttributeNames []string

	WasPrinted bool
}

// isEmittable is §4.10's predicate: none of terminal name, keyword
// name, list, the auxiliary "instancePlus", or an optional parent.
func (p *Production) isEmittable() bool {
	if p.IsList != ListKindNone {
		return false
	}
	if p.Name == "instancePlus" {
		return false
	}
	if p.OptionalRole == OptionalRoleParentOfInstanceOrSupertype || p.OptionalRole == OptionalRoleParentOfOther {
		return false
	}
	if isKeywordOrTerminalName(p.Name) {
		return false
	}
	return true
}

// isKeywordOrTerminalName reports whether name has the shape of a
// keyword or terminal name: all-caps (digits and underscores allowed),
// the same rule ast.classifyID uses to tell a Keyword/Terminal element
// apart from a NonTerminal one.
func isKeywordOrTerminalName(name string) bool {
	seenLetter := false
	for _, c := range name {
		if c >= 'a' && c <= 'z' {
			return false
		}
		if c >= 'A' && c <= 'Z' {
			seenLetter = true
		}
	}
	return seenLetter
}

// Model is the fully bound and analyzed grammar, ready for emission.
type Model struct {
	productions []*Production
	byName      map[string]productionID

	// CommaExpr is the single shared Expression every occurrence of the
	// comma alias `c` in the source resolves to (identity-equal across
	// all of them), or nil if the source never defines a "c" production.
	// The "c" production itself is validated and discarded: it is never
	// added to productions.
	CommaExpr *Expression

	Names *NameTable

	// EmissionOrder lists every emittable production in an order where
	// each direct supertype appears before its subtypes, computed by
	// computeEmissionOrder.
	EmissionOrder []productionID
}

func newModel() *Model {
	return &Model{
		byName: make(map[string]productionID),
		Names:  newNameTable(),
	}
}

func (m *Model) production(id productionID) *Production {
	if id == 0 {
		return nil
	}
	return m.productions[id-1]
}

// Production resolves a handle found on another Production's
// SubtypeOf/OptProd/BeInstance/Ancestors fields, or on an Expression's
// Production field, back to the *Production it names. It returns nil
// for the zero handle.
func (m *Model) Production(id productionID) *Production {
	return m.production(id)
}

func (m *Model) addProduction(name string, pos ast.Position) *Production {
	id := productionID(len(m.productions) + 1)
	p := &Production{ID: id, Name: name, Pos: pos}
	m.productions = append(m.productions, p)
	m.byName[name] = id
	return p
}

func (m *Model) lookup(name string) (*Production, bool) {
	id, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.production(id), true
}

// Productions returns every retained production in declaration order,
// including ones excluded from emission (lists, optional parents,
// all-caps names, and "instancePlus"). The "c" comma production is not
// among them.
func (m *Model) Productions() []*Production {
	return m.productions
}
