package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nihei9/sebnf/grammar"
)

// GrammarWriter writes an LALR-style `.y` grammar-file skeleton: one
// rule per emittable production, each alternative spelled out with the
// keyword/terminal/non-terminal vocabulary the NameTable settled on.
// Building or driving the resulting parser is out of scope; an external
// parser generator consumes this file.
type GrammarWriter struct {
	Model *grammar.Model
}

func (w *GrammarWriter) WriteGrammar(out io.Writer) error {
	bw := bufio.NewWriter(out)

	fmt.Fprintf(bw, "%%token %s\n", joinNames(w.Model.Names.Terminals()))
	for _, kw := range w.Model.Names.Keywords() {
		lex, _ := w.Model.Names.KeywordLexeme(kw)
		fmt.Fprintf(bw, "%%token %s \"%s\"\n", kw, lex)
	}
	fmt.Fprintf(bw, "\n%%%%\n\n")

	for _, id := range w.Model.EmissionOrder {
		p := w.Model.Production(id)
		w.writeRule(bw, p)
	}

	return bw.Flush()
}

func (w *GrammarWriter) writeRule(bw *bufio.Writer, p *grammar.Production) {
	fmt.Fprintf(bw, "%s\n", p.Name)
	for i, def := range p.Defs {
		sep := "  |"
		if i == 0 {
			sep = "  :"
		}
		fmt.Fprintf(bw, "%s %s\n", sep, w.ruleRHS(def))
	}
	fmt.Fprintf(bw, "  ;\n\n")
}

func (w *GrammarWriter) ruleRHS(def *grammar.Definition) string {
	if len(def.Expressions) == 0 {
		return "/* empty */"
	}
	out := ""
	for i, e := range def.Expressions {
		if i > 0 {
			out += " "
		}
		out += expressionSymbol(e)
	}
	return out
}

func expressionSymbol(e *grammar.Expression) string {
	switch e.Kind {
	case grammar.ExpressionKindNonTerminal:
		return e.Text
	case grammar.ExpressionKindKeyword, grammar.ExpressionKindTerminal:
		return e.Text
	default:
		return fmt.Sprintf("%q", e.Text)
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += n
	}
	return out
}
