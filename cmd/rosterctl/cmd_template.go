package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/counselordesk/internal/app/importer"
	"github.com/yigit/counselordesk/internal/pkg/logger"
)

var templateFormat string

var templateCmd = &cobra.Command{
	Use:   "template [output]",
	Short: "Write the roster import template",
	Long: `Writes the header row and one example row. CSV output is UTF-8 with a
byte-order mark so spreadsheet programs open it with the right encoding.
Without an output path the template goes to stdout. The format defaults to the
output file's extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringVarP(&templateFormat, "format", "f", "", "csv or xlsx")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(templateFormat)
	output := ""
	if len(args) == 1 {
		output = args[0]
	}
	if format == "" {
		format = "csv"
		if importer.KindFromFilename(output) == importer.KindSpreadsheet {
			format = "xlsx"
		}
	}

	write, err := templateWriter(format)
	if err != nil {
		return err
	}

	if output == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(filepath.Clean(output))
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	lgr := logger.WithComponent("template")
	lgr.Info().Str("path", output).Str("format", format).Msg("Template written")
	return nil
}

func templateWriter(format string) (func(io.Writer) error, error) {
	switch format {
	case "csv":
		return importer.WriteCSVTemplate, nil
	case "xlsx":
		return importer.WriteXLSXTemplate, nil
	default:
		return nil, fmt.Errorf("unknown format %q, want csv or xlsx", format)
	}
}
