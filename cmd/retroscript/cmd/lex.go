package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retroscript/rs/internal/lexer"
	"github.com/retroscript/rs/internal/token"
)

var (
	lexEval    string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an RS file or expression",
	Long: `Tokenize (lex) an RS program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
RS source code is broken into tokens.

Examples:
  # Tokenize a script file
  retroscript lex script.retro

  # Tokenize inline code
  retroscript lex -e 'set $x = 42'

  # Show token types and positions
  retroscript lex --show-type --show-pos script.retro

  # Show only illegal tokens
  retroscript lex --only-errors script.retro`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	toks, lexErr := lexer.Tokenize(input)
	if lexErr != nil {
		fmt.Fprintf(os.Stderr, "Lex error: %s\n", lexErr.Error())
		return fmt.Errorf("tokenizing failed")
	}

	errorCount := 0
	for _, tok := range toks {
		if onlyErrors && tok.Type != token.ILLEGAL {
			continue
		}
		if tok.Type == token.ILLEGAL {
			errorCount++
		}
		printToken(tok)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(toks))
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	switch {
	case tok.Type == token.EOF:
		output += " EOF"
	case tok.Type == token.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Raw)
	case tok.Raw == "":
		output += fmt.Sprintf(" %s", tok.Type)
	default:
		output += fmt.Sprintf(" %q", tok.Raw)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}

	fmt.Println(output)
}
