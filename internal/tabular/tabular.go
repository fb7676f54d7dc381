package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/rpattn/hbnb/internal/domain"
)

// Format is a sheet encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	// SheetName is the sheet written to xlsx exports.
	SheetName = "Objects"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported sheet format")
	ErrNoRows            = errors.New("no rows found in sheet")
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// leadingColumns are always written first, in this order.
var leadingColumns = []string{domain.TypeTagKey, domain.KeyID, domain.KeyCreatedAt, domain.KeyUpdatedAt}

// FormatFromPath picks the sheet format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
}

// Row is a data row of a sheet with its 1-based line in the source.
type Row struct {
	Line    int
	Mapping map[string]any
}

type sourceRow struct {
	line  int
	cells []string
}

// Read parses a sheet into serialized mappings, one per data row. The first
// non-empty row is the header. Cells are kept as written: empty cells are left
// out of the mapping, a cell holding a JSON string is unquoted, and JSON arrays
// or objects are decoded only in string_list fields of the row's kind and in
// columns its schema does not declare.
func Read(payload []byte, format Format) ([]Row, error) {
	var (
		rows []sourceRow
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = readCSV(payload)
	case FormatXLSX:
		rows, err = readXLSX(payload)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, err
	}

	var (
		headers []string
		result  []Row
	)
	for _, row := range rows {
		if isEmptyRow(row.cells) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row.cells))
			for i, h := range row.cells {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}

		schema := rowSchema(headers, row.cells)
		m := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(row.cells) || row.cells[i] == "" {
				continue
			}
			m[header] = cellValue(schema, header, row.cells[i])
		}
		result = append(result, Row{Line: row.line, Mapping: m})
	}

	if headers == nil {
		return nil, ErrNoRows
	}

	return result, nil
}

// Write renders mappings as a sheet. Columns are the type tag, id and
// timestamps followed by every other key in sorted order.
func Write(w io.Writer, format Format, mappings []map[string]any) error {
	headers := Columns(mappings)
	rows := make([][]string, 0, len(mappings)+1)
	rows = append(rows, headers)
	for _, m := range mappings {
		row := make([]string, len(headers))
		for i, h := range headers {
			value, ok := m[h]
			if !ok {
				continue
			}
			cell, err := cellText(value)
			if err != nil {
				return errors.Wrapf(err, "could not render column %q", h)
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

// Columns returns the header row Write uses for mappings.
func Columns(mappings []map[string]any) []string {
	seen := make(map[string]struct{})
	var rest []string
	for _, m := range mappings {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !isLeading(k) {
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)

	headers := make([]string, 0, len(leadingColumns)+len(rest))
	for _, k := range leadingColumns {
		if _, ok := seen[k]; ok {
			headers = append(headers, k)
		}
	}
	return append(headers, rest...)
}

func readCSV(payload []byte) ([]sourceRow, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var rows []sourceRow
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv")
		}
		line, _ := csvReader.FieldPos(0)
		rows = append(rows, sourceRow{line: line, cells: record})
	}
	return rows, nil
}

func readXLSX(payload []byte) ([]sourceRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open xlsx")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to read rows from xlsx")
	}

	rows := make([]sourceRow, len(cells))
	for i, c := range cells {
		rows[i] = sourceRow{line: i + 1, cells: c}
	}
	return rows, nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(rows); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	return nil
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WithStack(err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write xlsx")
	}
	return nil
}

// rowSchema returns the schema of the kind named in the row's type tag, or an
// empty schema when the kind is missing or unknown.
func rowSchema(headers []string, cells []string) domain.Schema {
	for i, h := range headers {
		if h != domain.TypeTagKey || i >= len(cells) {
			continue
		}
		schema, err := domain.SchemaFor(cells[i])
		if err != nil {
			return domain.Schema{}
		}
		return schema
	}
	return domain.Schema{}
}

func cellValue(schema domain.Schema, header string, cell string) any {
	if strings.HasPrefix(cell, `"`) {
		var text string
		if err := json.Unmarshal([]byte(cell), &text); err == nil {
			return text
		}
		return cell
	}

	if field, declared := schema.Field(header); declared {
		if field.Type == domain.FieldTypeStringList && strings.HasPrefix(cell, "[") {
			if decoded, ok := decodeJSON(cell); ok {
				return decoded
			}
		}
		return cell
	}

	if strings.HasPrefix(cell, "[") || strings.HasPrefix(cell, "{") {
		if decoded, ok := decodeJSON(cell); ok {
			return decoded
		}
	}
	return cell
}

func decodeJSON(cell string) (any, bool) {
	if !json.Valid([]byte(cell)) {
		return nil, false
	}
	var decoded any
	dec := json.NewDecoder(strings.NewReader(cell))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

func cellText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		if !needsQuoting(v) {
			return v, nil
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return "", errors.WithStack(err)
		}
		return string(raw), nil
	case json.Number:
		return v.String(), nil
	case []any, []string, map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", errors.WithStack(err)
		}
		return string(raw), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value), nil
	}
	return s, nil
}

// needsQuoting reports whether a string cell would read back as something
// else: an absent value, a JSON string, array or object.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch s[0] {
	case '"', '[', '{':
		return true
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isLeading(key string) bool {
	for _, k := range leadingColumns {
		if k == key {
			return true
		}
	}
	return false
}
