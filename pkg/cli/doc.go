/*
Package cli provides command-line interface utilities for the cbml command.

The cli package includes output formatters, the check report model, progress
reporting and signal handling.

Output Formatting:

Check results are collected into a Report and printed as text or JSON:

	report := &cli.Report{}
	report.Add(cli.NewFileReport(path, "document", errs, source, 1))
	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Text output renders each diagnostic with its code, location, source excerpt,
note and help line.

Progress Reporting:

With --progress the check command prints a line per file on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Begin(len(files))
	for _, f := range files {
		progress.FileDone(f, len(check(f)))
	}
	progress.End()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
