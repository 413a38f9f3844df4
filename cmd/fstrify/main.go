package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tmorris/fstrify/pkg/lexer"
	"github.com/tmorris/fstrify/pkg/parser"
	"github.com/tmorris/fstrify/pkg/printer"
	"github.com/tmorris/fstrify/pkg/pyast"
)

var version = "0.1.0"

// Debug flags for dumping intermediate representations
var (
	dAST bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists debug flags that should also accept single-dash style
var debugFlagNames = []string{"dast"}

// normalizeFlags converts single-dash debug flags like -dast to --dast
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fstrify [first last]",
		Short: "fstrify rewrites %-formatting of string literals into f-strings",
		Long: `fstrify reads Python source on stdin and writes it back with
%-format expressions on literal templates rewritten as f-string
literals. All other source layout is reproduced unchanged. The
optional first and last arguments restrict written output to that
inclusive line range.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := io.ReadAll(in)
			if err != nil {
				fmt.Fprintf(errOut, "fstrify: error reading input: %v\n", err)
				return err
			}
			mod, err := parseSource(string(source), errOut)
			if err != nil {
				return err
			}

			// Handle -dast: dump the parse tree instead of rewriting
			if dAST {
				return doDumpAST(mod, out)
			}

			return doRewrite(mod, string(source), parseWindowArgs(args), out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&dAST, "dast", "", false, "Dump the parse tree")

	return rootCmd
}

// window is an inclusive output line range; zero bounds mean unbounded
type window struct {
	first int
	last  int
}

// parseWindowArgs interprets the optional positional arguments as an
// output line window. Unless both bounds parse as integers the window
// stays open and the whole output is emitted.
func parseWindowArgs(args []string) window {
	var w window
	if len(args) == 2 {
		first, err1 := strconv.Atoi(args[0])
		last, err2 := strconv.Atoi(args[1])
		if err1 == nil && err2 == nil {
			w.first = first
			w.last = last
		}
	}
	return w
}

// parseSource lexes and parses Python source, returning the module tree
func parseSource(source string, errOut io.Writer) (*pyast.Module, error) {
	l := lexer.New(source)
	p := parser.New(l)
	mod := p.ParseModule()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintf(errOut, "<stdin>: %s\n", e)
		}
		return nil, fmt.Errorf("parsing failed with %d errors", len(p.Errors()))
	}
	return mod, nil
}

// doRewrite regenerates the source with %-format expressions rewritten
func doRewrite(mod *pyast.Module, source string, w window, out, errOut io.Writer) error {
	pr := printer.New(out)
	pr.SetErrOutput(errOut)
	pr.SetSource(source)

	first, last := 1, math.MaxInt
	if w.first > 0 {
		first = w.first
	}
	if w.last > 0 {
		last = w.last
	}
	pr.SetWindow(first, last)

	if err := pr.Render(mod); err != nil {
		fmt.Fprintf(errOut, "fstrify: %v\n", err)
		return err
	}
	pr.Finish()
	return nil
}

// doDumpAST prints the parse tree to stdout (-dast flag)
func doDumpAST(mod *pyast.Module, out io.Writer) error {
	pr := pyast.NewPrinter(out)
	pr.PrintModule(mod)
	return nil
}
