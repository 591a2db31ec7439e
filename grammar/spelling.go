package grammar

import "strings"

// refineSpelling is pass §4.9. Keyword names are registered in the
// NameTable under a canonical form (underscores stripped, so they make
// valid generated identifiers), but the lexer still needs to match the
// literal spelling the grammar author actually wrote. This pass walks
// every Keyword expression in declaration order and records, for each
// canonical name, the spelling it first saw; later occurrences that
// differ (e.g. "END_ENTITY" after an earlier "ENDENTITY") are silently
// reconciled to that first spelling rather than treated as a second
// keyword.
func (b *Builder) refineSpelling() error {
	seen := map[string]bool{}
	for _, p := range b.model.productions {
		for _, def := range p.Defs {
			for _, e := range def.Expressions {
				if e.Kind != ExpressionKindKeyword {
					continue
				}
				canon := canonicalKeywordName(e.Text)
				if err := b.model.Names.RecordKeyword(canon); err != nil {
					return b.errAt(err.(*SemanticError), e.Pos, canon)
				}
				if !seen[canon] {
					b.model.Names.ReviseSpelling(canon, e.Text)
					seen[canon] = true
				}
				e.Text = canon
			}
		}
	}
	return nil
}

func canonicalKeywordName(text string) string {
	return strings.ReplaceAll(text, "_", "")
}
