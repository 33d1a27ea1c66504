package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/counselordesk/internal/app/importer"
	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/pkg/logger"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Parse a roster file without importing it",
	Long: `Reads an .xlsx workbook or a GB18030 CSV file exactly as the console's
import does and prints the students it would add. Exits non-zero when the
console would reject the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the rows as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	kind := importer.KindFromFilename(path)
	lgr := logger.WithComponent("inspect")
	lgr.Debug().Str("path", path).Str("kind", kind.String()).Int("bytes", len(data)).Msg("Parsing roster file")

	rows, err := importer.Parse(data, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		students := make([]models.Student, len(rows))
		for i, f := range rows {
			students[i] = models.NewStudent("", f)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(students)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t姓名\t性别\t年级\t专业\t学号\t宿舍")
	for i, f := range rows {
		st := models.NewStudent("", f)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, st.Name, st.Gender, st.Grade, st.Major, st.StudentNumber, st.DormID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d students would be imported\n", len(rows))
	return nil
}
