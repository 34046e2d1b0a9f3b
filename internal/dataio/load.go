package dataio

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JustUsingaWebsite/data-compare/internal/types"
)

// ErrUnsupportedFormat is returned when a file extension has no
// registered parser or serializer.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DataColumn is the forced column name for single-column loads and
// plain text files.
const DataColumn = "Data"

// Load reads a file into a TableData with its natural columns,
// dispatching on extension:
//   - .csv         first record is the header
//   - .xls/.xlsx   first sheet, first row is the header
//   - .txt         one row per line, single Data column, no header
//   - .json        one JSON object per line, keys become columns
func Load(path string) (types.TableData, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadCSV(path)
	case ".xls", ".xlsx":
		return loadExcel(path)
	case ".txt":
		return loadText(path)
	case ".json":
		return loadJSONLines(path)
	default:
		return types.TableData{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// LoadSingleColumn reads a file into a single Data column regardless of
// its natural shape. Delimited and spreadsheet files are flattened
// cell-wise so every cell gets scanned for tokens; no header row is
// assumed. JSON records are not a single-column input.
func LoadSingleColumn(path string) (types.TableData, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err := readCSVRecords(path)
		if err != nil {
			return types.TableData{}, err
		}
		return flattenToDataColumn(rows), nil
	case ".xls", ".xlsx":
		rows, err := readSheetRows(path)
		if err != nil {
			return types.TableData{}, err
		}
		return flattenToDataColumn(rows), nil
	case ".txt":
		return loadText(path)
	default:
		return types.TableData{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func loadCSV(path string) (types.TableData, error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return types.TableData{}, err
	}
	if len(records) == 0 {
		return types.TableData{}, nil
	}
	return types.TableData{
		HasHeader: true,
		Header:    records[0],
		Rows:      records[1:],
	}, nil
}

func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are the input's problem, not ours
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func loadExcel(path string) (types.TableData, error) {
	rows, err := readSheetRows(path)
	if err != nil {
		return types.TableData{}, err
	}
	if len(rows) == 0 {
		return types.TableData{}, nil
	}
	return types.TableData{
		HasHeader: true,
		Header:    rows[0],
		Rows:      rows[1:],
	}, nil
}

func readSheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func loadText(path string) (types.TableData, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.TableData{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl := types.TableData{Header: []string{DataColumn}}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tbl.Rows = append(tbl.Rows, []string{scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return types.TableData{}, fmt.Errorf("read %s: %w", path, err)
	}
	return tbl, nil
}

// loadJSONLines parses line-delimited JSON records. Columns are the
// sorted union of keys across records; absent fields render empty.
func loadJSONLines(path string) (types.TableData, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.TableData{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []map[string]any
	keys := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber() // keep numeric literals verbatim
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			return types.TableData{}, fmt.Errorf("parse %s: %w", path, err)
		}
		for k := range rec {
			keys[k] = struct{}{}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return types.TableData{}, fmt.Errorf("read %s: %w", path, err)
	}

	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	tbl := types.TableData{HasHeader: true, Header: header}
	for _, rec := range records {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = renderCell(rec[k])
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func renderCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func flattenToDataColumn(records [][]string) types.TableData {
	tbl := types.TableData{Header: []string{DataColumn}}
	for _, rec := range records {
		for _, cell := range rec {
			tbl.Rows = append(tbl.Rows, []string{cell})
		}
	}
	return tbl
}
