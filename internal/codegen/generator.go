package codegen

import (
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/relex/internal/compiler"
	"github.com/KromDaniel/relex/internal/lexer"
)

// Config holds the configuration for generating a lexer.
type Config struct {
	Name    string           // Prefix of the generated identifiers (e.g. "Calc")
	Package string           // Package name of the generated file
	Source  string           // Where the token specification came from, for the header
	Logger  *compiler.Logger // Optional verbose logger
}

// Validate checks the generated identifier prefix and package name.
func (c Config) Validate() error {
	if err := ValidName(c.Name); err != nil {
		return err
	}
	if c.Package == "" {
		return fmt.Errorf("package name is required")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package name %q is not a valid Go identifier", c.Package)
	}
	return nil
}

// Generator emits table-driven Go source for a set of compiled token types.
// The generated NextName function follows the same maximal-munch rules as
// lexer.Lexer.
type Generator struct {
	config   Config
	names    Names
	alphabet string
	values   []*lexer.TokenValue
	logger   *compiler.Logger
	file     *jen.File
}

// New creates a generator for the token values of a lexer over alphabet.
func New(config Config, alphabet string, values []*lexer.TokenValue) *Generator {
	logger := config.Logger
	if logger == nil {
		logger = compiler.NewLogger(false)
	}
	return &Generator{
		config:   config,
		names:    NamesFor(config.Name),
		alphabet: alphabet,
		values:   values,
		logger:   logger,
	}
}

// Render generates the file and writes it to w.
func (g *Generator) Render(w io.Writer) error {
	if err := g.generate(); err != nil {
		return err
	}
	if err := g.file.Render(w); err != nil {
		return fmt.Errorf("failed to render file: %w", err)
	}
	return nil
}

// Save generates the file and writes it to path.
func (g *Generator) Save(path string) error {
	if err := g.generate(); err != nil {
		return err
	}
	if err := g.file.Save(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	g.logger.Log("Wrote %s", path)
	return nil
}

func (g *Generator) generate() error {
	if err := g.config.Validate(); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}

	g.logger.Section("Code Generation")
	g.file = jen.NewFile(g.config.Package)
	g.file.HeaderComment("Code generated by relex. DO NOT EDIT.")
	if g.config.Source != "" {
		g.file.Comment(fmt.Sprintf("Token specification: %s", g.config.Source))
		g.file.Line()
	}

	g.generateAlphabet()
	g.generateTables()
	g.generateTokenType()
	g.generateMatchMethod()
	g.generateScanMethod()
	g.generateMatch()
	g.generateNext()
	return nil
}

func (g *Generator) generateAlphabet() {
	g.file.Var().Id(g.names.Alphabet).Op("=").Map(jen.Rune()).Int().Values(jen.DictFunc(func(d jen.Dict) {
		for i, r := range []rune(g.alphabet) {
			d[jen.LitRune(r)] = jen.Lit(i)
		}
	}))
	g.file.Line()
}

func (g *Generator) generateTables() {
	g.file.Comment(fmt.Sprintf("%s is the transition table of one token type. States are numbered", g.names.DFA))
	g.file.Comment("from 1; table[state-1][symbol] is the next state and reject is 0 when")
	g.file.Comment("the DFA has no reject state.")
	g.file.Type().Id(g.names.DFA).Struct(
		jen.Id(TypName).String(),
		jen.Id("start").Int(),
		jen.Id("reject").Int(),
		jen.Id("accept").Index().Bool(),
		jen.Id("table").Index().Index().Int(),
	)
	g.file.Line()

	var entries []jen.Code
	for _, v := range g.values {
		if !v.Valid() {
			g.logger.Log("Skipping token %s: %v", v.Type, v.Err)
			continue
		}
		d := v.DFA
		accept := make([]jen.Code, d.NumStates()+1)
		for s := range accept {
			accept[s] = jen.Lit(s > 0 && d.IsAccept(s))
		}
		var rows []jen.Code
		for _, row := range d.Table() {
			cells := make([]jen.Code, len(row))
			for i, to := range row {
				cells[i] = jen.Lit(to)
			}
			rows = append(rows, jen.Values(cells...))
		}
		reject, _ := d.Reject()

		entries = append(entries, jen.Line().Values(jen.Dict{
			jen.Id(TypName):  jen.Lit(v.Type),
			jen.Id("start"):  jen.Lit(d.Start()),
			jen.Id("reject"): jen.Lit(reject),
			jen.Id("accept"): jen.Index().Bool().Values(accept...),
			jen.Id("table"):  jen.Index().Index().Int().Values(rows...),
		}))
		g.logger.Log("Token %s: %d states", v.Type, d.NumStates())
	}
	if len(entries) > 0 {
		entries = append(entries, jen.Line())
	}

	g.file.Comment(fmt.Sprintf("%s holds the token types in priority order.", g.names.DFAs))
	g.file.Var().Id(g.names.DFAs).Op("=").Index().Id(g.names.DFA).Values(entries...)
	g.file.Line()

	g.file.Var().Id(g.names.Newlines).Op("=").Qual("strings", "NewReplacer").Call(
		jen.Lit("\r\n"), jen.Lit(" "), jen.Lit("\n"), jen.Lit(" "), jen.Lit("\r"), jen.Lit(" "),
	)
	g.file.Line()
}

func (g *Generator) generateTokenType() {
	g.file.Comment(fmt.Sprintf("%s is a lexeme and the token type that matched it.", g.names.Token))
	g.file.Type().Id(g.names.Token).Struct(
		jen.Id("Type").String(),
		jen.Id("Lexeme").String(),
	)
	g.file.Line()

	g.file.Var().Defs(
		jen.Comment(fmt.Sprintf("%s is returned by %s when only separators remain.", g.names.EndOfInput, g.names.Next)),
		jen.Id(g.names.EndOfInput).Op("=").Qual("errors", "New").Call(jen.Lit("end of input")),
		jen.Comment(fmt.Sprintf("%s is returned by %s when no token type matches.", g.names.InvalidToken, g.names.Next)),
		jen.Id(g.names.InvalidToken).Op("=").Qual("errors", "New").Call(jen.Lit("invalid token")),
	)
	g.file.Line()
}

// recv starts a method on the table struct.
func (g *Generator) recv(name string) *jen.Statement {
	return g.file.Func().Params(jen.Id(RecvName).Op("*").Id(g.names.DFA)).Id(name)
}

func (g *Generator) generateMatchMethod() {
	g.recv("match").Params(jen.Id(InputName).String()).Bool().Block(
		jen.Id(StateName).Op(":=").Id(RecvName).Dot("start"),
		jen.For(jen.List(jen.Id("_"), jen.Id("r")).Op(":=").Range().Id(InputName)).Block(
			jen.List(jen.Id("i"), jen.Id("ok")).Op(":=").Id(g.names.Alphabet).Index(jen.Id("r")),
			jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.False())),
			jen.Id(StateName).Op("=").Id(RecvName).Dot("table").Index(jen.Id(StateName).Op("-").Lit(1)).Index(jen.Id("i")),
		),
		jen.Return(jen.Id(RecvName).Dot("accept").Index(jen.Id(StateName))),
	)
	g.file.Line()
}

func (g *Generator) generateScanMethod() {
	g.file.Comment("scan returns the length of the longest match at the start of runes, or 0.")
	g.recv("scan").Params(jen.Id(RunesName).Index().Rune()).Int().Block(
		jen.Id(StateName).Op(":=").Id(RecvName).Dot("start"),
		jen.Id(LongestName).Op(":=").Lit(0),
		jen.For(jen.List(jen.Id("i"), jen.Id("r")).Op(":=").Range().Id(RunesName)).Block(
			jen.If(jen.Id("r").Op("==").LitRune(lexer.Separator)).Block(
				jen.If(jen.Id(LongestName).Op(">").Lit(0)).Block(jen.Break()),
				jen.Continue(),
			),
			jen.List(jen.Id("c"), jen.Id("ok")).Op(":=").Id(g.names.Alphabet).Index(jen.Id("r")),
			jen.If(jen.Op("!").Id("ok")).Block(jen.Break()),
			jen.Id(StateName).Op("=").Id(RecvName).Dot("table").Index(jen.Id(StateName).Op("-").Lit(1)).Index(jen.Id("c")),
			jen.If(jen.Id(StateName).Op("==").Id(RecvName).Dot("reject")).Block(jen.Break()),
			jen.If(jen.Id(RecvName).Dot("accept").Index(jen.Id(StateName))).Block(
				jen.Id(LongestName).Op("=").Id("i").Op("+").Lit(1),
			),
		),
		jen.Return(jen.Id(LongestName)),
	)
	g.file.Line()
}

func (g *Generator) generateMatch() {
	dfa := jen.Id(g.names.DFAs).Index(jen.Id("i"))
	g.file.Comment(fmt.Sprintf("%s reports whether input is exactly one lexeme of token type %s.", g.names.Match, TypName))
	g.file.Func().Id(g.names.Match).Params(jen.List(jen.Id(TypName), jen.Id(InputName)).String()).Bool().Block(
		jen.For(jen.Id("i").Op(":=").Range().Id(g.names.DFAs)).Block(
			jen.If(dfa.Clone().Dot(TypName).Op("==").Id(TypName)).Block(
				jen.Return(dfa.Clone().Dot("match").Call(jen.Id(InputName))),
			),
		),
		jen.Return(jen.False()),
	)
	g.file.Line()
}

func (g *Generator) generateNext() {
	trimmedEmpty := func(s string) *jen.Statement {
		return jen.Qual("strings", "TrimLeft").Call(jen.Id(s), jen.Lit(string(lexer.Separator))).Op("==").Lit("")
	}
	tok := jen.Id(g.names.Token)

	g.file.Comment(fmt.Sprintf("%s returns the longest token at the start of input and the rest of the", g.names.Next))
	g.file.Comment("input. Ties between equally long matches go to the token type declared first.")
	g.file.Func().Id(g.names.Next).Params(jen.Id(InputName).String()).Params(tok.Clone(), jen.String(), jen.Error()).Block(
		jen.Id(InputName).Op("=").Id(g.names.Newlines).Dot("Replace").Call(jen.Id(InputName)),
		jen.If(trimmedEmpty(InputName)).Block(
			jen.Return(tok.Clone().Values(), jen.Lit(""), jen.Id(g.names.EndOfInput)),
		),
		jen.Id(RunesName).Op(":=").Index().Rune().Call(jen.Id(InputName)),
		jen.List(jen.Id("best"), jen.Id("bestLen")).Op(":=").List(jen.Lit(-1), jen.Lit(0)),
		jen.For(jen.Id("i").Op(":=").Range().Id(g.names.DFAs)).Block(
			jen.If(
				jen.Id("n").Op(":=").Id(g.names.DFAs).Index(jen.Id("i")).Dot("scan").Call(jen.Id(RunesName)),
				jen.Id("n").Op(">").Id("bestLen"),
			).Block(
				jen.List(jen.Id("best"), jen.Id("bestLen")).Op("=").List(jen.Id("i"), jen.Id("n")),
			),
		),
		jen.If(jen.Id("best").Op("<").Lit(0)).Block(
			jen.Return(tok.Clone().Values(), jen.Id(InputName), jen.Id(g.names.InvalidToken)),
		),
		jen.Id("rest").Op(":=").String().Call(jen.Id(RunesName).Index(jen.Id("bestLen").Op(":"))),
		jen.If(trimmedEmpty("rest")).Block(
			jen.Id("rest").Op("=").Lit(""),
		),
		jen.Id("lexeme").Op(":=").Qual("strings", "ReplaceAll").Call(
			jen.String().Call(jen.Id(RunesName).Index(jen.Op(":").Id("bestLen"))),
			jen.Lit(string(lexer.Separator)),
			jen.Lit(""),
		),
		jen.Return(
			tok.Clone().Values(jen.Dict{
				jen.Id("Type"):   jen.Id(g.names.DFAs).Index(jen.Id("best")).Dot(TypName),
				jen.Id("Lexeme"): jen.Id("lexeme"),
			}),
			jen.Id("rest"),
			jen.Nil(),
		),
	)
}
