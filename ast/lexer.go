package ast

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	serr "github.com/nihei9/sebnf/error"
)

type tokenKind string

const (
	tokenKindID        = tokenKind("id")
	tokenKindLiteral   = tokenKind("literal")
	tokenKindEq        = tokenKind("=")
	tokenKindOr        = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindComment   = tokenKind("comment")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// lexer turns a source file into a stream of tokens. Whitespace and the
// `,` separators between elements are skipped; `(* ... *)` comments are
// returned as tokenKindComment so the
// parser can pick attribute-block comments out of ordinary ones.
type lexer struct {
	src      *bufio.Reader
	filePath string
	row      int
	col      int
	peeked   rune
	hasPeek  bool
	atEOF    bool
}

func newLexer(filePath string, r io.Reader) *lexer {
	return &lexer{
		src:      bufio.NewReader(r),
		filePath: filePath,
		row:      1,
		col:      1,
	}
}

func (l *lexer) readRune() (rune, bool) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked, true
	}
	c, _, err := l.src.ReadRune()
	if err != nil {
		l.atEOF = true
		return 0, false
	}
	return c, true
}

func (l *lexer) unreadRune(c rune) {
	l.peeked = c
	l.hasPeek = true
}

func (l *lexer) advance(c rune) {
	if c == '\n' {
		l.row++
		l.col = 1
		return
	}
	l.col++
}

func (l *lexer) next() (*token, error) {
	for {
		c, ok := l.readRune()
		if !ok {
			return &token{kind: tokenKindEOF, pos: Position{Row: l.row, Col: l.col}}, nil
		}
		if unicode.IsSpace(c) || c == ',' {
			l.advance(c)
			continue
		}
		if c == '(' {
			c2, ok2 := l.readRune()
			if ok2 && c2 == '*' {
				return l.lexComment()
			}
			if ok2 {
				l.unreadRune(c2)
			}
			return l.errAt(synErrUnexpectedChar, string(c))
		}

		startRow, startCol := l.row, l.col
		l.advance(c)

		switch {
		case c == '=':
			return &token{kind: tokenKindEq, text: "=", pos: Position{Row: startRow, Col: startCol}}, nil
		case c == '|':
			return &token{kind: tokenKindOr, text: "|", pos: Position{Row: startRow, Col: startCol}}, nil
		case c == ';':
			return &token{kind: tokenKindSemicolon, text: ";", pos: Position{Row: startRow, Col: startCol}}, nil
		case c == '\'':
			return l.lexLiteral(startRow, startCol)
		case isIDStart(c):
			return l.lexID(c, startRow, startCol)
		default:
			return &token{kind: tokenKindInvalid, text: string(c), pos: Position{Row: startRow, Col: startCol}}, nil
		}
	}
}

func (l *lexer) lexComment() (*token, error) {
	startRow, startCol := l.row, l.col
	l.advance('(')
	l.advance('*')

	var b strings.Builder
	for {
		c, ok := l.readRune()
		if !ok {
			return nil, l.mkErr(synErrUnclosedComment, startRow, startCol)
		}
		if c == '*' {
			c2, ok2 := l.readRune()
			if ok2 && c2 == ')' {
				l.advance('*')
				l.advance(')')
				return &token{kind: tokenKindComment, text: b.String(), pos: Position{Row: startRow, Col: startCol}}, nil
			}
			if ok2 {
				l.unreadRune(c2)
			}
		}
		l.advance(c)
		b.WriteRune(c)
	}
}

func (l *lexer) lexLiteral(startRow, startCol int) (*token, error) {
	var b strings.Builder
	for {
		c, ok := l.readRune()
		if !ok {
			return nil, l.mkErr(synErrUnclosedLiteral, startRow, startCol)
		}
		if c == '\'' {
			l.advance(c)
			if b.Len() == 0 {
				return nil, l.mkErr(synErrEmptyLiteral, startRow, startCol)
			}
			return &token{kind: tokenKindLiteral, text: b.String(), pos: Position{Row: startRow, Col: startCol}}, nil
		}
		l.advance(c)
		b.WriteRune(c)
	}
}

func (l *lexer) lexID(first rune, startRow, startCol int) (*token, error) {
	var b strings.Builder
	b.WriteRune(first)
	for {
		c, ok := l.readRune()
		if !ok {
			break
		}
		if !isIDPart(c) {
			l.unreadRune(c)
			break
		}
		l.advance(c)
		b.WriteRune(c)
	}
	return &token{kind: tokenKindID, text: b.String(), pos: Position{Row: startRow, Col: startCol}}, nil
}

func isIDStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIDPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *lexer) mkErr(cause *SyntaxError, row, col int) error {
	return &serr.SpecError{
		Cause:    cause,
		FilePath: l.filePath,
		Row:      row,
		Col:      col,
	}
}

func (l *lexer) errAt(cause *SyntaxError, detail string) (*token, error) {
	return nil, &serr.SpecError{
		Cause:    cause,
		FilePath: l.filePath,
		Detail:   detail,
		Row:      l.row,
		Col:      l.col,
	}
}
