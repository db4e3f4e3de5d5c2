package main

import (
	"fmt"
	"strings"

	"cbml-lang/cbml/pkg/cbml"
	"cbml-lang/cbml/pkg/cbml/ast"
	"cbml-lang/cbml/pkg/cbml/lexer"
	"cbml-lang/cbml/pkg/cli"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a CBML file",
	Long: `Print every token of a CBML file with its location.

Lexical errors are reported on stderr after the tokens that could be read.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

var tokensFlags struct {
	format string
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensFlags.format, "format", "f", "", "output format: text, json (default from config)")
}

// tokenView is the printable form of a token. Positions are 1-based.
type tokenView struct {
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	Line      uint   `json:"line"`
	Column    uint   `json:"column"`
	EndLine   uint   `json:"end_line"`
	EndColumn uint   `json:"end_column"`
}

func newTokenView(tok lexer.Token) tokenView {
	v := tokenView{
		Kind:      tok.Kind.String(),
		Line:      tok.Span.Start.Line + 1,
		Column:    tok.Span.Start.Column + 1,
		EndLine:   tok.Span.End.Line + 1,
		EndColumn: tok.Span.End.Column + 1,
	}
	switch tok.Kind {
	case lexer.Number:
		v.Text = ast.FormatNumber(tok.Number)
	case lexer.String:
		v.Text = ast.QuoteString(tok.Text)
	default:
		v.Text = tok.Text
	}
	return v
}

// tokenList renders as aligned text lines.
type tokenList []tokenView

func (l tokenList) String() string {
	var sb strings.Builder
	for i, t := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		loc := fmt.Sprintf("%d:%d-%d:%d", t.Line, t.Column, t.EndLine, t.EndColumn)
		if t.Text != "" {
			fmt.Fprintf(&sb, "%-14s %-16s %s", loc, t.Kind, t.Text)
		} else {
			fmt.Fprintf(&sb, "%-14s %s", loc, t.Kind)
		}
	}
	return sb.String()
}

func runTokens(cmd *cobra.Command, args []string) error {
	a := state()
	path := args[0]

	format, err := outputFormat(a, tokensFlags.format)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd, "tokens")
	data, err := limitedReader(a.cfg.Check.MaxFileSize)(path)
	if err != nil {
		return cli.NewCommandError("tokens", err)
	}
	src := string(data)

	toks, errs := lexer.Tokenize(path, src)
	a.logger.DebugContext(ctx, "file tokenized", "file", path, "tokens", len(toks), "errors", errs.Count())

	list := make(tokenList, 0, len(toks))
	for _, tok := range toks {
		list = append(list, newTokenView(tok))
	}
	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), list); err != nil {
		return cli.NewCommandError("tokens", fmt.Errorf("failed to write tokens: %w", err))
	}

	if errs.HasErrors() {
		source := func(string) (string, bool) { return src, true }
		report := cli.Report{Color: a.cfg.Output.Color}
		report.Add(cli.NewFileReport(path, string(cbml.KindOf(path)), errs, source, a.cfg.Check.ContextLines))
		fmt.Fprintln(cmd.ErrOrStderr(), report.String())
		return cli.NewCommandError("tokens", cli.ErrValidationFailed)
	}
	return nil
}

