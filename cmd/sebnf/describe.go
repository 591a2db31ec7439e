package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/sebnf/ast"
	"github.com/nihei9/sebnf/grammar"
)

var describeCmd = &cobra.Command{
	Use:   "describe <baseName>",
	Short: "Read <baseName>.ebnf, run every analysis pass, and summarize the resulting model",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("productions:  %v\n", len(model.Productions()))
	fmt.Printf("instances:    %v\n", instances)
	fmt.Printf("supertypes:   %v\n", supertypes)
	fmt.Printf("lists:        %v\n", lists)
	fmt.Printf("optionals:    %v\n", optionals)
	fmt.Printf("keywords:     %v\n", len(model.Names.Keywords()))
	fmt.Printf("classes:      %v\n", len(model.Names.Classes()))
	fmt.Printf("emission order:\n")
	for _, id := range model.EmissionOrder {
		fmt.Printf("  %v\n", model.Production(id).Name)
	}

	return nil
}
