package main

import (
	"fmt"
	"io"
	"os"

	"cbml-lang/cbml/pkg/cbml"
	"cbml-lang/cbml/pkg/cbml/export"
	"cbml-lang/cbml/pkg/cli"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Print the value tree of a valid CBML document",
	Long: `Check a CBML document and print its values as JSON or YAML.

Fields set to default take the schema's default value. Fields set to todo
are exported as null. Documents with diagnostics are not exported; the
diagnostics are printed on stderr instead.`,
	Example: `  cbml export app.cbml
  cbml export app.cbml --format yaml -o app.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var exportFlags struct {
	format  string
	output  string
	baseDir string
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "json", "export format: json, yaml")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportFlags.baseDir, "base-dir", "", "directory relative schema imports resolve against (default: the document's directory)")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	a := state()
	path := args[0]

	format, err := export.ParseFormat(exportFlags.format)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}
	if cbml.KindOf(path) == cbml.KindSchema {
		return cli.NewCommandError("export", fmt.Errorf("%s is a schema file; only documents can be exported", path))
	}

	c := newChecker(a)
	if exportFlags.baseDir != "" {
		c.baseDir = exportFlags.baseDir
	}

	ctx := commandContext(cmd, "export")
	res, fr := c.check(ctx, path)
	if !fr.Valid {
		report := cli.Report{Color: a.cfg.Output.Color}
		report.Add(fr)
		fmt.Fprintln(cmd.ErrOrStderr(), report.String())
		return cli.NewCommandError("export", cli.ErrValidationFailed)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportFlags.output != "" {
		f, ferr := os.Create(exportFlags.output)
		if ferr != nil {
			return cli.NewCommandError("export", fmt.Errorf("failed to create output file: %w", ferr))
		}
		w = f
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cli.NewCommandError("export", fmt.Errorf("failed to close output file: %w", cerr))
			}
		}()
	}

	if err = export.Write(w, res.Document.ToValue(), format); err != nil {
		return cli.NewCommandError("export", err)
	}
	a.logger.DebugContext(ctx, "document exported", "file", path, "format", string(format), "output", exportFlags.output)
	return nil
}

