// Package importer turns roster files exported by the school's administrative
// software into student records.
//
// Column position is the only contract: the header row is dropped unread and
// every following row is mapped by index (see Columns). Delimited text files come
// out of that software encoded as GB18030, not UTF-8.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

// FileKind selects the decoder for an upload
type FileKind int

const (
	// KindDelimited is comma separated text in GB18030 (or UTF-8 with a byte-order mark)
	KindDelimited FileKind = iota
	// KindSpreadsheet is an Office Open XML or legacy binary workbook
	KindSpreadsheet
)

func (k FileKind) String() string {
	if k == KindSpreadsheet {
		return "spreadsheet"
	}
	return "delimited"
}

// KindFromFilename picks the decoder the way the console did: .xlsx and .xls go to
// the workbook reader, anything else is read as delimited text. The workbook
// reader tells the two spreadsheet formats apart by content.
func KindFromFilename(name string) FileKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return KindSpreadsheet
	default:
		return KindDelimited
	}
}

// Column indexes of the roster layout
const (
	ColName = iota
	ColGender
	ColDepartment
	ColGrade
	ColMajor
	ColClassName
	ColStudentNumber
	ColIDCard
	ColAddress
	ColOrigin
	ColBirthday
	ColPhone
	ColFatherName
	ColFatherPhone
	ColMotherName
	ColMotherPhone
	ColDormID
	columnCount
)

// Columns are the header labels of the roster layout, in column order
var Columns = [columnCount]string{
	"姓名", "性别", "院系", "年级", "专业", "班级", "学号", "身份证号", "家庭地址",
	"籍贯", "出生日期", "手机号", "父亲姓名", "父亲联系方式", "母亲姓名", "母亲联系方式", "宿舍号",
}

// ImportError rejects a whole upload. It matches apperrors.ErrImportFailed.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Err)
	}
	return "import failed: " + e.Reason
}

func (e *ImportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, apperrors.ErrImportFailed) hold for every ImportError
func (e *ImportError) Is(target error) bool {
	return target == apperrors.ErrImportFailed
}

// ErrTooFewRows is the cause of an ImportError for files without a data row
var ErrTooFewRows = errors.New("file needs a header row and at least one data row")

// Parse decodes data and maps every row with a name to a new student.
// Rows without a name are skipped; cells past the end of a row read as "".
func Parse(data []byte, kind FileKind) ([]models.StudentFields, error) {
	var (
		rows [][]string
		err  error
	)
	switch kind {
	case KindSpreadsheet:
		rows, err = readSpreadsheet(data)
	default:
		rows, err = readDelimited(data)
	}
	if err != nil {
		return nil, &ImportError{Reason: "cannot decode " + kind.String() + " file", Err: err}
	}
	if len(rows) < 2 {
		return nil, &ImportError{Reason: "not enough rows", Err: ErrTooFewRows}
	}

	students := make([]models.StudentFields, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if cell(row, ColName) == "" {
			continue
		}
		students = append(students, mapRow(row))
	}
	return students, nil
}

func mapRow(row []string) models.StudentFields {
	gender := models.GenderMale
	if cell(row, ColGender) == string(models.GenderFemale) {
		gender = models.GenderFemale
	}
	return models.StudentFields{
		Name:          cell(row, ColName),
		Gender:        gender,
		Department:    cell(row, ColDepartment),
		Grade:         cell(row, ColGrade),
		Major:         cell(row, ColMajor),
		ClassName:     cell(row, ColClassName),
		StudentNumber: cell(row, ColStudentNumber),
		IDCard:        cell(row, ColIDCard),
		Address:       cell(row, ColAddress),
		Origin:        cell(row, ColOrigin),
		Birthday:      cell(row, ColBirthday),
		Phone:         cell(row, ColPhone),
		FatherName:    cell(row, ColFatherName),
		FatherPhone:   cell(row, ColFatherPhone),
		MotherName:    cell(row, ColMotherName),
		MotherPhone:   cell(row, ColMotherPhone),
		DormID:        cell(row, ColDormID),
	}
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// maxLineBytes bounds a single roster line
const maxLineBytes = 1 << 20

// readDelimited splits the decoded text into lines before splitting cells, so a
// quote can never join two roster rows. Blank lines are dropped.
func readDelimited(data []byte) ([][]string, error) {
	// A byte-order mark overrides GB18030, so our own UTF-8 template reads back cleanly.
	dec := unicode.BOMOverride(simplifiedchinese.GB18030.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(bytes.NewReader(data), dec))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows [][]string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// splitLine honours quoted cells. A line whose quotes do not balance is cut at
// every comma instead.
func splitLine(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if rec, err := r.Read(); err == nil {
		return rec
	}
	return strings.Split(line, ",")
}

// ole2Signature opens every legacy binary workbook (.xls)
var ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func readSpreadsheet(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, ole2Signature) {
		return readLegacySpreadsheet(data)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// readLegacySpreadsheet reads the first sheet of a BIFF workbook. The reader
// panics on damaged records, so a panic becomes a decode error.
func readLegacySpreadsheet(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("damaged legacy workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := legacyRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		width := row.LastCol()
		if width < columnCount {
			width = columnCount
		}
		cells := make([]string, width)
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// legacyRow returns nil for rows the sheet never stored; Row panics on those.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
