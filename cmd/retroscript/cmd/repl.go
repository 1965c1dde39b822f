package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/retroscript/rs/pkg/retroscript"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const replLine = "----------------------------------------"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive RS session",
	Long: `Start a read-eval-print loop for RS, with command history and
line editing.

Variables set in one line persist for the rest of the session. Type
'.exit' or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(*cobra.Command, []string) error {
	r := &repl{prompt: "rs >>> "}
	engine, err := retroscript.New()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	r.start(os.Stdout, engine)
	return nil
}

// repl is the interactive session driver, grounded on the teacher
// pack's go-mix repl (readline + fatih/color banners) but bound to
// RS's ScriptEngine instead of an in-process evaluator.
type repl struct {
	prompt string
}

func (r *repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", replLine)
	greenColor.Fprintf(w, "retroscript — RS interactive session\n")
	blueColor.Fprintf(w, "%s\n", replLine)
	yellowColor.Fprintln(w, "Version: "+Version)
	blueColor.Fprintf(w, "%s\n", replLine)
	cyanColor.Fprintf(w, "%s\n", "Type RS statements and press enter.")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit, '.vars' to list variables.")
	cyanColor.Fprintf(w, "%s\n", "Use up/down arrows to navigate history.")
	blueColor.Fprintf(w, "%s\n", replLine)
}

func (r *repl) start(w io.Writer, engine *retroscript.Engine) {
	r.printBanner(w)
	engine.SetOutput(w)

	rl, err := readline.New(r.prompt)
	if err != nil {
		redColor.Fprintf(w, "failed to start readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good bye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(w, "Good bye!")
			return
		}
		if line == ".vars" {
			r.printVariables(w, engine)
			continue
		}

		rl.SaveHistory(line)
		r.execute(w, line, engine)
	}
}

func (r *repl) execute(w io.Writer, line string, engine *retroscript.Engine) {
	result := engine.Run(line, retroscript.RunOptions{})
	if !result.Success {
		redColor.Fprintf(w, "%s\n", result.Error.Format(true))
		return
	}
	if result.Value != nil {
		yellowColor.Fprintf(w, "%v\n", result.Value)
	}
}

func (r *repl) printVariables(w io.Writer, engine *retroscript.Engine) {
	vars := engine.GetVariables()
	if len(vars) == 0 {
		cyanColor.Fprintln(w, "(no variables set)")
		return
	}
	for name, val := range vars {
		fmt.Fprintf(w, "$%s = %v\n", name, val)
	}
}
