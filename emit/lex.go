package emit

import (
	"encoding/json"
	"fmt"
	"io"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/nihei9/sebnf/grammar"
)

// lexPatterns gives each fixed terminal class a concrete regular
// expression. The dialect only ever needs these few
// lexical classes; grammar-specific keywords are added per Model.
var lexPatterns = map[string]string{
	"INTEGER":    `[0-9]+`,
	"REAL":       `[0-9]+\.[0-9]+`,
	"STRING":     `'([^']|'')*'`,
	"IDENTIFIER": `[A-Za-z][A-Za-z0-9_]*`,
}

// LexWriter turns a Model's NameTable into a maleeni lexical
// specification, compiles it, and writes the compiled form as the
// `.lex` output file. This is the one emitter that genuinely depends on
// an external library rather than projecting text by hand: maleeni's
// compiled format (DFA tables, compressed or not) is exactly what its
// own driver package expects to load at scan time.
type LexWriter struct {
	Model *grammar.Model
}

func (w *LexWriter) WriteLex(out io.Writer) error {
	spec := w.buildLexSpec()

	compiled, err, cerrs := mlcompiler.Compile(spec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		return fmt.Errorf("compiling lexical specification: %w", err)
	}
	if len(cerrs) > 0 {
		return fmt.Errorf("%v lexical specification errors, first: %v", len(cerrs), cerrs[0])
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(compiled)
}

func (w *LexWriter) buildLexSpec() *mlspec.LexSpec {
	var entries []*mlspec.LexEntry

	for name, pattern := range lexPatterns {
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(name),
			Pattern: mlspec.LexPattern(pattern),
		})
	}

	for _, kw := range w.Model.Names.Keywords() {
		lex, _ := w.Model.Names.KeywordLexeme(kw)
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kw),
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(lex)),
		})
	}

	entries = append(entries,
		&mlspec.LexEntry{Kind: mlspec.LexKindName("white_space"), Pattern: mlspec.LexPattern(`[ \t\r\n]+`)},
	)

	return &mlspec.LexSpec{
		Entries: entries,
	}
}
