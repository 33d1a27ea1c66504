package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// utf8BOM lets spreadsheet programs on Chinese Windows open the template as UTF-8
const utf8BOM = "\ufeff"

// TemplateSheet is the sheet name used by the workbook template
const TemplateSheet = "学生档案"

// exampleRow shows counselors how a filled-in row looks
var exampleRow = [columnCount]string{
	"张三", "男", "信息工程学院", "2021级", "软件工程", "软工2101", "20210001", "110...",
	"北京", "北京", "2003-01-01", "138...", "父", "139...", "母", "139...", "南-101",
}

// WriteCSVTemplate writes the roster header and one example row as UTF-8 CSV with a BOM
func WriteCSVTemplate(w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns[:]); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := cw.Write(exampleRow[:]); err != nil {
		return fmt.Errorf("write template example: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSXTemplate writes the same template as a workbook
func WriteXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return fmt.Errorf("name template sheet: %w", err)
	}
	header := make([]interface{}, len(Columns))
	example := make([]interface{}, len(exampleRow))
	for i := range Columns {
		header[i] = Columns[i]
		example[i] = exampleRow[i]
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := f.SetSheetRow(TemplateSheet, "A2", &example); err != nil {
		return fmt.Errorf("write template example: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write template workbook: %w", err)
	}
	return nil
}
