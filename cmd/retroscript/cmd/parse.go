package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/pkg/retroscript"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse RS source and print its AST",
	Long: `Parse RS source code and print the parsed statement list back out
as RS source (use -e to parse source text given as the argument).

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse source text given as the argument")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string
	var err error

	if parseExpression {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	} else {
		input, _, err = readSource("", args)
		if err != nil {
			return err
		}
	}

	engine, newErr := retroscript.New()
	if newErr != nil {
		return fmt.Errorf("failed to create engine: %w", newErr)
	}

	parsed := engine.Parse(input)
	if !parsed.Success {
		fmt.Fprintln(os.Stderr, parsed.Error.Format(true))
		return fmt.Errorf("parsing failed")
	}

	fmt.Println(ast.Print(parsed.AST))
	return nil
}
