package ast

import (
	"io"
	"strings"

	serr "github.com/nihei9/sebnf/error"
)

// terminalNames is the fixed vocabulary of lexical terminal classes this
// dialect is aware of. Any other all-caps identifier is a keyword.
var terminalNames = map[string]bool{
	"INTEGER":    true,
	"REAL":       true,
	"STRING":     true,
	"IDENTIFIER": true,
}

const (
	attBlockStart = "Start attributes"
	attBlockEnd   = "End attributes"
)

// Parser reads one source file and builds its ast.File. It performs no
// semantic checks: classification that depends on which productions
// exist (e.g. the comma alias) is resolved later by package grammar.
type Parser struct {
	lex      *lexer
	filePath string
	tok      *token
}

// Parse reads a source file from r and returns its File.
func Parse(filePath string, r io.Reader) (*File, error) {
	p := &Parser{
		lex:      newLexer(filePath, r),
		filePath: filePath,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseFile()
}

func (p *Parser) advance() error {
	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}
		if tok.kind == tokenKindInvalid {
			return p.errf(synErrUnexpectedChar, tok.pos, tok.text)
		}
		p.tok = tok
		return nil
	}
}

func (p *Parser) parseFile() (*File, error) {
	f := &File{}
	inAttBlock := false

	for {
		if p.tok.kind == tokenKindEOF {
			break
		}
		if p.tok.kind == tokenKindComment {
			text := strings.TrimSpace(p.tok.text)
			switch {
			case text == attBlockStart:
				inAttBlock = true
			case text == attBlockEnd:
				inAttBlock = false
			case inAttBlock:
				line, err := parseAttributeLine(text, p.tok.pos)
				if err != nil {
					return nil, p.errf(err.(*SyntaxError), p.tok.pos, "")
				}
				f.AttributeLines = append(f.AttributeLines, line)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		prod, err := p.parseProduction()
		if err != nil {
			return nil, err
		}
		f.Productions = append(f.Productions, prod)
	}

	return f, nil
}

func (p *Parser) parseProduction() (*Production, error) {
	if p.tok.kind != tokenKindID {
		return nil, p.errf(synErrExpectedID, p.tok.pos, "")
	}
	name := p.tok.text
	pos := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokenKindEq {
		return nil, p.errf(synErrExpectedEq, p.tok.pos, "")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	prod := &Production{Name: name, Pos: pos}
	for {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		prod.Defs = append(prod.Defs, def)

		if p.tok.kind == tokenKindOr {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if p.tok.kind != tokenKindSemicolon {
		return nil, p.errf(synErrExpectedSemicolon, p.tok.pos, "")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return prod, nil
}

func (p *Parser) parseDefinition() (*Definition, error) {
	def := &Definition{Pos: p.tok.pos}
	for isElementStart(p.tok) {
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		def.Elements = append(def.Elements, elem)
	}
	if len(def.Elements) == 0 {
		return nil, p.errf(synErrExpectedElement, p.tok.pos, "")
	}
	return def, nil
}

func isElementStart(tok *token) bool {
	return tok.kind == tokenKindID || tok.kind == tokenKindLiteral
}

func (p *Parser) parseElement() (*Element, error) {
	tok := p.tok
	elem := &Element{Pos: tok.pos}

	switch tok.kind {
	case tokenKindID:
		elem.Text = tok.text
		elem.Kind = classifyID(tok.text)
	case tokenKindLiteral:
		elem.Text = tok.text
		elem.Kind = classifyLiteral(tok.text)
	default:
		return nil, p.errf(synErrExpectedElement, tok.pos, "")
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	return elem, nil
}

func classifyID(text string) ElementKind {
	if text == "c" {
		return ElementKindComma
	}
	if isAllUpper(text) {
		if terminalNames[text] {
			return ElementKindTerminal
		}
		return ElementKindKeyword
	}
	return ElementKindNonTerminal
}

func isAllUpper(s string) bool {
	seenLetter := false
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			return false
		}
		if c >= 'A' && c <= 'Z' {
			seenLetter = true
		}
	}
	return seenLetter
}

func classifyLiteral(text string) ElementKind {
	switch len(text) {
	case 1:
		return ElementKindOneChar
	case 2:
		a, b := text[0], text[1]
		if isUpperLowerPair(a, b) {
			return ElementKindTwoChar
		}
		return ElementKindTerminalString
	default:
		return ElementKindTerminalString
	}
}

func isUpperLowerPair(a, b byte) bool {
	if a >= 'A' && a <= 'Z' && b >= 'a' && b <= 'z' {
		return a-'A' == b-'a'
	}
	if a >= 'a' && a <= 'z' && b >= 'A' && b <= 'Z' {
		return b-'A' == a-'a'
	}
	return false
}

// parseAttributeLine parses one line of the form
//
//	ProductionName : att1 att2 ...
//	ProductionName : att1 att2 ... : full1 full2 ...
func parseAttributeLine(text string, pos Position) (*AttributeLine, error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, synErrMalformedAttLine
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, synErrMalformedAttLine
	}
	line := &AttributeLine{
		ProductionName: name,
		OwnNames:       fields(parts[1]),
		Pos:            pos,
	}
	if len(parts) == 3 {
		line.FullNames = fields(parts[2])
	}
	return line, nil
}

func fields(s string) []string {
	fs := strings.Fields(s)
	if len(fs) == 0 {
		return nil
	}
	return fs
}

func (p *Parser) errf(cause *SyntaxError, pos Position, detail string) error {
	return &serr.SpecError{
		Cause:    cause,
		FilePath: p.filePath,
		Detail:   detail,
		Row:      pos.Row,
		Col:      pos.Col,
	}
}
