// Package goldentest runs the analyzer end to end against a directory of
// fixture files, each pairing a source grammar with the model summary
// it must produce, and reports a pass/fail per fixture. This is the
// same golden-file shape vartan's own e2e tester used to drive a
// compiled grammar against expected parse trees; here the "parse tree"
// is an analyzed Model instead of a syntax tree, since this tool
// doesn't drive parsers.
package goldentest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/sebnf/ast"
	"github.com/nihei9/sebnf/grammar"
)

const caseSeparator = "=== output ==="

// TestCase is one fixture: a source grammar and the Describe output it
// must produce.
type TestCase struct {
	Source         []byte
	ExpectedOutput string
}

// TestCaseWithMetadata pairs a parsed TestCase with the file it came
// from, or the error that prevented parsing it.
type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases walks testPath (a file or a directory) and parses every
// fixture found. Inside a directory, files without a .txt suffix are
// skipped; a fixture that cannot be parsed is returned with its Error
// set rather than silently dropped.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{{TestCase: c, FilePath: testPath, Error: err}}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		if e.IsDir() {
			cases = append(cases, ListTestCases(filepath.Join(testPath, e.Name()))...)
			continue
		}
		if !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		cases = append(cases, ListTestCases(filepath.Join(testPath, e.Name()))...)
	}
	return cases
}

func parseTestCase(path string) (*TestCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	i := strings.Index(string(raw), caseSeparator)
	if i < 0 {
		return nil, fmt.Errorf("%v: missing %q separator", path, caseSeparator)
	}
	src := string(raw)[:i]
	expected := string(raw)[i+len(caseSeparator):]
	return &TestCase{
		Source:         []byte(src),
		ExpectedOutput: strings.TrimSpace(expected),
	}, nil
}

// TestResult is the outcome of running one TestCase.
type TestResult struct {
	TestCasePath string
	Error        error
	Got          string
	Want         string
}

func (r *TestResult) String() string {
	if r.Error != nil {
		return fmt.Sprintf("FAIL %v: %v", r.TestCasePath, r.Error)
	}
	if r.Got != r.Want {
		return fmt.Sprintf("FAIL %v: output mismatch\n--- want ---\n%v\n--- got ---\n%v", r.TestCasePath, r.Want, r.Got)
	}
	return fmt.Sprintf("PASS %v", r.TestCasePath)
}

func (r *TestResult) Passed() bool {
	return r.Error == nil && r.Got == r.Want
}

// Tester runs every listed TestCase and collects the results.
type Tester struct {
	Cases []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runCase(c))
	}
	return rs
}

func runCase(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{TestCasePath: c.FilePath, Error: c.Error}
	}

	f, err := ast.Parse(c.FilePath, strings.NewReader(string(c.TestCase.Source)))
	if err != nil {
		return &TestResult{TestCasePath: c.FilePath, Error: err}
	}
	model, err := grammar.NewBuilder(f, c.FilePath).Build()
	if err != nil {
		return &TestResult{TestCasePath: c.FilePath, Error: err}
	}

	got := strings.TrimSpace(Describe(model))
	return &TestResult{
		TestCasePath: c.FilePath,
		Got:          got,
		Want:         c.TestCase.ExpectedOutput,
	}
}

// Describe renders the summary the `sebnf describe` subcommand prints,
// without its keyword and class counts.
func Describe(model *grammar.Model) string {
	var b strings.Builder
	var instances, supertypes, lists, optionals int
	for _, p := range model.Productions() {
		if p.IsInstance {
			instances++
		}
		if p.IsSupertype {
			supertypes++
		}
		if p.IsList != grammar.ListKindNone {
			lists++
		}
		if p.OptionalRole != grammar.OptionalRoleNone {
			optionals++
		}
	}

	fmt.Fprintf(&b, "productions:  %v\n", len(model.Productions()))
	fmt.Fprintf(&b, "instances:    %v\n", instances)
	fmt.Fprintf(&b, "supertypes:   %v\n", supertypes)
	fmt.Fprintf(&b, "lists:        %v\n", lists)
	fmt.Fprintf(&b, "optionals:    %v\n", optionals)
	fmt.Fprintf(&b, "emission order:\n")
	for _, id := range model.EmissionOrder {
		fmt.Fprintf(&b, "  %v\n", model.Production(id).Name)
	}
	return b.String()
}
