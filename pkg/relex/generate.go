package relex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KromDaniel/relex/internal/codegen"
	"github.com/KromDaniel/relex/internal/compiler"
	"github.com/KromDaniel/relex/internal/lexer"
)

// GenerateOptions configures lexer code generation.
type GenerateOptions struct {
	// SpecFile is the token specification to compile
	SpecFile string

	// Name is the prefix for generated identifiers (e.g., "Calc" generates "NextCalc")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Verbose logs every construction step to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o GenerateOptions) Validate() error {
	if o.SpecFile == "" {
		return fmt.Errorf("spec file cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return codegen.Config{Name: o.Name, Package: o.Package}.Validate()
}

// Generate compiles every token type of the specification and writes a Go
// file with their DFA tables and a table-driven lexer.
func Generate(opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	f, err := os.Open(opts.SpecFile)
	if err != nil {
		return fmt.Errorf("failed to open spec file: %w", err)
	}
	defer f.Close()

	spec, err := lexer.ParseSpec(f)
	if err != nil {
		return fmt.Errorf("failed to read token specification: %w", err)
	}

	logger := compiler.NewLogger(opts.Verbose)
	l := lexer.New(spec, "", lexer.Config{Cache: defaultCache, Logger: logger})

	g := codegen.New(codegen.Config{
		Name:    opts.Name,
		Package: opts.Package,
		Source:  filepath.Base(opts.SpecFile),
		Logger:  logger,
	}, spec.Alphabet, l.TokenValues())
	if err := g.Save(opts.OutputFile); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
