package grammar

import "sort"

// keywordBucketCapacity and classBucketCapacity bound how many names the
// original generator's fixed-size per-letter buckets could hold. We
// don't need a fixed array to get this behavior in Go, but we keep the
// same capacity so the overflow diagnostic in §7 stays reachable.
const (
	keywordBucketCapacity  = 64
	classBucketCapacity    = 64
	terminalTableCapacity  = 256
)

// nameBucket holds the keyword/class names starting with one letter,
// kept sorted. lexemes is parallel to names and holds the spelling
// ReviseSpelling is allowed to overwrite.
type nameBucket struct {
	names   []string
	lexemes []string
}

func (b *nameBucket) indexOf(name string) (int, bool) {
	i := sort.SearchStrings(b.names, name)
	if i < len(b.names) && b.names[i] == name {
		return i, true
	}
	return i, false
}

func (b *nameBucket) insert(name, lexeme string, capacity int) (inserted bool, err error) {
	i, found := b.indexOf(name)
	if found {
		return false, nil
	}
	if len(b.names) >= capacity {
		return false, semErrNameTableOverflow
	}
	b.names = insertAt(b.names, i, name)
	b.lexemes = insertAt(b.lexemes, i, lexeme)
	return true, nil
}

func insertAt(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// NameTable buckets the three disjoint vocabularies a generated grammar
// needs: keyword names with their (possibly revised) spellings, class
// names, and flat terminal names. Buckets are keyed by the name's first
// letter so insertion stays sorted within a bucket without re-sorting
// the whole table, mirroring the original per-letter array layout.
type NameTable struct {
	keywordBuckets map[byte]*nameBucket
	classBuckets   map[byte]*nameBucket

	terminalNames []string
}

func newNameTable() *NameTable {
	return &NameTable{
		keywordBuckets: make(map[byte]*nameBucket),
		classBuckets:   make(map[byte]*nameBucket),
	}
}

func (t *NameTable) bucket(m map[byte]*nameBucket, name string) *nameBucket {
	key := name[0]
	b, ok := m[key]
	if !ok {
		b = &nameBucket{}
		m[key] = b
	}
	return b
}

// RecordKeyword registers a keyword name and its default lexeme
// (identical to the name until ReviseSpelling changes it). Re-recording
// an already-known name is a silent no-op, matching the original
// recordToken behavior: duplicates aren't an error.
func (t *NameTable) RecordKeyword(name string) error {
	b := t.bucket(t.keywordBuckets, name)
	_, err := b.insert(name, name, keywordBucketCapacity)
	return err
}

// RecordClass registers a class (production) name.
func (t *NameTable) RecordClass(name string) error {
	b := t.bucket(t.classBuckets, name)
	_, err := b.insert(name, name, classBucketCapacity)
	return err
}

// RecordTerminal registers a flat terminal name such as INTEGER.
// Duplicates are a silent no-op.
func (t *NameTable) RecordTerminal(name string) error {
	for _, n := range t.terminalNames {
		if n == name {
			return nil
		}
	}
	if len(t.terminalNames) >= terminalTableCapacity {
		return semErrNameTableOverflow
	}
	t.terminalNames = append(t.terminalNames, name)
	return nil
}

// ReviseSpelling overwrites the lexeme recorded for an existing keyword
// name, used by the keyword-spelling refinement pass (§4.9). It is a
// no-op if the name was never recorded.
func (t *NameTable) ReviseSpelling(name, lexeme string) {
	b, ok := t.keywordBuckets[name[0]]
	if !ok {
		return
	}
	i, found := b.indexOf(name)
	if !found {
		return
	}
	b.lexemes[i] = lexeme
}

// KeywordLexeme returns the current (possibly revised) lexeme for a
// recorded keyword name.
func (t *NameTable) KeywordLexeme(name string) (string, bool) {
	b, ok := t.keywordBuckets[name[0]]
	if !ok {
		return "", false
	}
	i, found := b.indexOf(name)
	if !found {
		return "", false
	}
	return b.lexemes[i], true
}

// Keywords returns every recorded keyword name in sorted order.
func (t *NameTable) Keywords() []string {
	return t.sortedBucketNames(t.keywordBuckets)
}

// Classes returns every recorded class name in sorted order.
func (t *NameTable) Classes() []string {
	return t.sortedBucketNames(t.classBuckets)
}

// Terminals returns every recorded terminal name, in recording order.
func (t *NameTable) Terminals() []string {
	out := make([]string, len(t.terminalNames))
	copy(out, t.terminalNames)
	return out
}

func (t *NameTable) sortedBucketNames(m map[byte]*nameBucket) []string {
	var keys []byte
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var out []string
	for _, k := range keys {
		out = append(out, m[k].names...)
	}
	return out
}
