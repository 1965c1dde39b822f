package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/pkg/retroscript"
)

var (
	evalExpr string
	dumpAST  bool
	timeout  int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an RS script file or expression",
	Long: `Execute an RS program from a file, stdin, or an inline expression.

Examples:
  # Run a script file
  retroscript run script.retro

  # Evaluate inline code
  retroscript run -e 'print "Hello, World!"'

  # Run with an AST dump (for debugging)
  retroscript run --dump-ast script.retro

  # Cap execution time at 5 seconds
  retroscript run --timeout 5 script.retro`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().IntVar(&timeout, "timeout", 0, "execution timeout in seconds (0 uses the engine default)")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine, err := retroscript.New()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	engine.SetOutput(os.Stdout)

	if dumpAST {
		parsed := engine.Parse(input)
		if !parsed.Success {
			fmt.Fprintln(os.Stderr, parsed.Error.Format(true))
			return fmt.Errorf("parsing failed")
		}
		fmt.Println("AST:")
		fmt.Println(ast.Print(parsed.AST))
		fmt.Println()
	}

	opts := retroscript.RunOptions{}
	if timeout > 0 {
		opts.Timeout = timeoutDuration(timeout)
	}

	result := engine.Run(input, opts)
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Error.Format(true))
		return fmt.Errorf("execution failed")
	}
	return nil
}

func readSource(expr string, args []string) (input, filename string, err error) {
	if expr != "" {
		return expr, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("error reading file: %w", readErr)
		}
		return string(data), args[0], nil
	}
	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("error reading stdin: %w", readErr)
	}
	return string(data), "<stdin>", nil
}

func timeoutDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
