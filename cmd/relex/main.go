// Command relex compiles regular expressions to DFAs, simulates automaton
// descriptions, tokenizes source files and generates Go lexers.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/compiler"
	"github.com/KromDaniel/relex/pkg/relex"
)

type CLI struct {
	Verbose bool `short:"v" env:"RELEX_VERBOSE" help:"Log construction steps to stderr"`

	DFA      dfaCommand      `cmd:"" name:"dfa" help:"Simulate a DFA description on input strings"`
	NFA      nfaCommand      `cmd:"" name:"nfa" help:"Convert an NFA description to a DFA description"`
	Regex    regexCommand    `cmd:"" help:"Match input strings against a regex definition file"`
	Describe describeCommand `cmd:"" help:"Compile a pattern and print its DFA description"`
	Lex      lexCommand      `cmd:"" help:"Tokenize a source file with a token specification"`
	Gen      genCommand      `cmd:"" help:"Generate a Go lexer from a token specification"`
}

// runContext is bound into every command's Run method.
type runContext struct {
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

func (c *runContext) logger() *compiler.Logger {
	l := compiler.NewLogger(c.verbose)
	l.SetOutput(c.stderr)
	return l
}

// inputOptions selects the strings to simulate: arguments, or one per line
// of a file.
type inputOptions struct {
	Inputs    []string `arg:"" optional:"" help:"Strings to test"`
	InputFile string   `name:"input-file" short:"i" type:"existingfile" placeholder:"PATH" help:"File with one input string per line"`
}

func (o inputOptions) read() ([]string, error) {
	inputs := append([]string(nil), o.Inputs...)
	if o.InputFile == "" {
		return inputs, nil
	}
	f, err := os.Open(o.InputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		inputs = append(inputs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", o.InputFile, err)
	}
	return inputs, nil
}

func printVerdicts(w io.Writer, inputs []string, match func(string) bool) {
	for _, in := range inputs {
		if match(in) {
			fmt.Fprintln(w, "Accept")
		} else {
			fmt.Fprintln(w, "Reject")
		}
	}
}

type dfaCommand struct {
	Description string `arg:"" type:"existingfile" help:"DFA description file"`
	inputOptions
}

func (c *dfaCommand) Run(ctx *runContext) error {
	d, err := readFile(c.Description, relex.ReadDFA)
	if err != nil {
		return err
	}
	inputs, err := c.read()
	if err != nil {
		return err
	}
	printVerdicts(ctx.stdout, inputs, d.Simulate)
	return nil
}

type nfaCommand struct {
	Description string `arg:"" type:"existingfile" help:"NFA description file, with e for epsilon"`
	Format      string `enum:"text,yaml" default:"text" help:"Output format (text, yaml)"`
}

func (c *nfaCommand) Run(ctx *runContext) error {
	n, err := readFile(c.Description, relex.ReadNFA)
	if err != nil {
		return err
	}
	d, err := relex.ToDFA(n)
	if err != nil {
		return err
	}
	return writeDFA(ctx.stdout, d, c.Format)
}

type regexCommand struct {
	Definition string `arg:"" type:"existingfile" help:"Regex definition file: quoted alphabet, then quoted pattern"`
	inputOptions
}

func (c *regexCommand) Run(ctx *runContext) error {
	r, err := readFile(c.Definition, relex.ReadRegex)
	if err != nil {
		return err
	}
	if r.Invalid() {
		fmt.Fprintf(ctx.stderr, "relex: %v\n", r.Err())
	}
	inputs, err := c.read()
	if err != nil {
		return err
	}
	printVerdicts(ctx.stdout, inputs, r.Match)
	return nil
}

type describeCommand struct {
	Pattern  string `arg:"" help:"Regular expression"`
	Alphabet string `short:"a" required:"" help:"Alphabet symbols, one per character"`
	Format   string `enum:"text,yaml" default:"text" help:"Output format (text, yaml)"`
}

func (c *describeCommand) Run(ctx *runContext) error {
	d, err := compiler.New(compiler.Config{
		Pattern:  c.Pattern,
		Alphabet: c.Alphabet,
		Logger:   ctx.logger(),
	}).Compile()
	if err != nil {
		return err
	}
	return writeDFA(ctx.stdout, d, c.Format)
}

type lexCommand struct {
	Spec     string `arg:"" type:"existingfile" help:"Token specification file"`
	Source   string `arg:"" type:"existingfile" help:"Source file to tokenize"`
	Parallel bool   `help:"Scan token types concurrently"`
}

func (c *lexCommand) Run(ctx *runContext) error {
	src, err := os.ReadFile(c.Source)
	if err != nil {
		return err
	}
	spec, err := os.Open(c.Spec)
	if err != nil {
		return err
	}
	defer spec.Close()

	l, err := relex.NewLexer(spec, string(src), relex.LexerConfig{
		Parallel: c.Parallel,
		Logger:   ctx.logger(),
	})
	if err != nil {
		return err
	}
	for {
		tok, err := l.Next()
		if errors.Is(err, relex.ErrEndOfInput) {
			return nil
		}
		if errors.Is(err, relex.ErrNoMatch) {
			fmt.Fprintln(ctx.stdout, "Invalid token")
			return err
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.stdout, "%s %s\n", tok.Type, tok.Lexeme)
	}
}

type genCommand struct {
	Spec    string `arg:"" type:"existingfile" help:"Token specification file"`
	Name    string `required:"" help:"Prefix for generated identifiers (e.g. Calc generates NextCalc)"`
	Output  string `short:"o" required:"" placeholder:"PATH" help:"Output Go file"`
	Package string `default:"main" help:"Package name of the generated file"`
}

func (c *genCommand) Run(ctx *runContext) error {
	return relex.Generate(relex.GenerateOptions{
		SpecFile:   c.Spec,
		Name:       c.Name,
		OutputFile: c.Output,
		Package:    c.Package,
		Verbose:    ctx.verbose,
	})
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func writeDFA(w io.Writer, d *automaton.DFA, format string) error {
	if format == "yaml" {
		data, err := automaton.EncodeYAML(d)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	_, err := d.WriteTo(w)
	return err
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("relex"),
		kong.Description("Regular expressions to DFAs, and DFAs to lexers."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&runContext{verbose: cli.Verbose, stdout: stdout, stderr: stderr})
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "relex: %v\n", err)
		os.Exit(1)
	}
}
