// Package cli implements the terminal front end of bigcalc: result and
// self-check presentation, the progress spinner, the interactive REPL and
// shell completion scripts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bignum"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// lastResult names the variable that always holds the previous result.
const lastResult = "_"

var (
	varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	replCommands   = []string{"let", "vars", "ops", "hex", "help", "h", "?", "exit", "quit", "q"}
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Grouped displays results in word-grouped form.
	Grouped bool
	// Source feeds the rand operation.
	Source bignum.WordSource
	// Recorder receives one observation per evaluation. It may be nil.
	Recorder *metrics.Recorder
}

// REPL is an interactive session that evaluates operations and keeps
// named values between lines.
type REPL struct {
	config REPLConfig
	vars   map[string]bignum.Int
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance reading stdin and writing stdout.
func NewREPL(config REPLConfig) *REPL {
	return &REPL{
		config: config,
		vars:   make(map[string]bignum.Int),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until the user exits, the input ends or ctx is
// done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"bigcalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		eof := err != nil

		if input = strings.TrimSpace(input); input != "" {
			if !r.processCommand(ctx, input) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s\n\n", ui.CurrentStyles().Banner.Render("bigcalc - Interactive Mode"))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <a> [b]%s        - Evaluate an operation (see ops)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slet <x> = <op> ...%s  - Evaluate and store the result in x\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slet <x> = <value>%s   - Store a literal or another variable\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s                - List stored values (%s holds the last result)\n", ui.ColorYellow(), ui.ColorReset(), lastResult)
	fmt.Fprintf(r.out, "  %sops%s                 - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s                 - Toggle word-grouped display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s         - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Operands are hex literals (0x optional, leading '-') or variable names.\n")
}

// processCommand parses and executes one line. Returns false if the REPL
// should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "let":
		r.cmdLet(ctx, args)
	case "vars":
		r.cmdVars()
	case "ops":
		r.cmdOps()
	case "hex":
		r.cmdHex()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, ok := orchestration.Lookup(cmd); !ok {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
			return true
		}
		if res, ok := r.evaluate(ctx, cmd, args); ok {
			DisplayResult(res, orchestration.PresentationOptions{Grouped: r.config.Grouped}, r.out)
		}
	}
	return true
}

// evaluate resolves args and runs op, reporting failures on the output.
// The first value of a successful result becomes the last result.
func (r *REPL) evaluate(ctx context.Context, op string, args []string) (orchestration.Result, bool) {
	values := make([]bignum.Int, len(args))
	for i, a := range args {
		v, err := r.resolve(a)
		if err != nil {
			r.printError(apperrors.WrapError(err, "operand %d", i+1))
			return orchestration.Result{}, false
		}
		values[i] = v
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	env := orchestration.Env{Source: r.config.Source, Recorder: r.config.Recorder}
	res, err := orchestration.EvaluateValues(ctx, env, op, values)
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: op, Limit: r.config.Timeout}
	}
	if err != nil {
		r.printError(err)
		return res, false
	}
	r.vars[lastResult] = res.Value()
	return res, true
}

// resolve reads an operand: a stored variable, optionally negated with a
// leading '-', or else a hexadecimal literal. Variables shadow literals
// such as "ab".
func (r *REPL) resolve(s string) (bignum.Int, error) {
	if v, ok := r.vars[s]; ok {
		return v, nil
	}
	if name, ok := strings.CutPrefix(s, "-"); ok {
		if v, ok := r.vars[name]; ok {
			return v.Neg(), nil
		}
	}
	return bignum.ParseInt(s)
}

// cmdLet handles "let <name> = <op> args" and "let <name> = <value>".
func (r *REPL) cmdLet(ctx context.Context, args []string) {
	if len(args) < 3 || args[1] != "=" {
		fmt.Fprintf(r.out, "%sUsage: let <name> = <op> <a> [b] | let <name> = <value>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := args[0]
	if err := validateVarName(name); err != nil {
		r.printError(err)
		return
	}

	expr := args[2:]
	var value bignum.Int
	if op := strings.ToLower(expr[0]); isOperation(op) {
		res, ok := r.evaluate(ctx, op, expr[1:])
		if !ok {
			return
		}
		value = res.Value()
	} else {
		if len(expr) != 1 {
			r.printError(apperrors.ValidationError{Field: name, Message: fmt.Sprintf("unknown operation %q", expr[0])})
			return
		}
		v, err := r.resolve(expr[0])
		if err != nil {
			r.printError(err)
			return
		}
		value = v
	}

	r.vars[name] = value
	fmt.Fprintf(r.out, "%s%s%s = %s%s%s\n",
		ui.ColorBold(), name, ui.ColorReset(),
		ui.ColorGreen(), FormatValue(value, r.config.Grouped, true), ui.ColorReset())
}

// validateVarName rejects names that are not identifiers or that collide
// with an operation or command.
func validateVarName(name string) error {
	switch {
	case name == lastResult:
		return apperrors.ValidationError{Field: name, Message: "is reserved for the last result"}
	case !varNamePattern.MatchString(name):
		return apperrors.ValidationError{Field: name, Message: "is not a valid variable name"}
	case isOperation(strings.ToLower(name)), slices.Contains(replCommands, strings.ToLower(name)):
		return apperrors.ValidationError{Field: name, Message: "is a reserved word"}
	}
	return nil
}

func isOperation(name string) bool {
	_, ok := orchestration.Lookup(name)
	return ok
}

func (r *REPL) cmdVars() {
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s%-12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(), FormatValue(r.vars[name], r.config.Grouped, true))
	}
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range orchestration.Operations() {
		usage := op.Name + " a"
		if op.Arity == 2 {
			usage += " b"
		}
		fmt.Fprintf(r.out, "  %s%-10s%s %s\n", ui.ColorYellow(), usage, ui.ColorReset(), op.Summary)
	}
	fmt.Fprintln(r.out)
}

// cmdHex toggles between the compact and the word-grouped display.
func (r *REPL) cmdHex() {
	r.config.Grouped = !r.config.Grouped
	status := "compact"
	if r.config.Grouped {
		status = "word-grouped"
	}
	fmt.Fprintf(r.out, "Display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
