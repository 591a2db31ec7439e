package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/sebnf/ast"
	"github.com/nihei9/sebnf/emit"
	"github.com/nihei9/sebnf/grammar"
)

var compileCmd = &cobra.Command{
	Use:   "compile <baseName>",
	Short: "Read <baseName>.ebnf and emit <baseName>.classes.hh/.cc, <baseName>.y, and <baseName>.lex",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	baseName := args[0]
	srcPath := baseName + ".ebnf"

	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	file, err := ast.Parse(srcPath, src)
	if err != nil {
		return err
	}

	model, err := grammar.NewBuilder(file, srcPath).Build()
	if err != nil {
		return err
	}

	if err := writeClasses(baseName, model); err != nil {
		return err
	}
	if err := writeGrammarFile(baseName, model); err != nil {
		return err
	}
	if err := writeLex(baseName, model); err != nil {
		return err
	}

	return nil
}

func writeClasses(baseName string, model *grammar.Model) error {
	hh, err := os.Create(baseName + ".classes.hh")
	if err != nil {
		return err
	}
	defer hh.Close()

	cc, err := os.Create(baseName + ".classes.cc")
	if err != nil {
		return err
	}
	defer cc.Close()

	w := &emit.ClassWriter{Model: model}
	return w.WriteClasses(hh, cc)
}

func writeGrammarFile(baseName string, model *grammar.Model) error {
	f, err := os.Create(baseName + ".y")
	if err != nil {
		return err
	}
	defer f.Close()

	w := &emit.GrammarWriter{Model: model}
	return w.WriteGrammar(f)
}

func writeLex(baseName string, model *grammar.Model) error {
	f, err := os.Create(baseName + ".lex")
	if err != nil {
		return err
	}
	defer f.Close()

	w := &emit.LexWriter{Model: model}
	return w.WriteLex(f)
}
