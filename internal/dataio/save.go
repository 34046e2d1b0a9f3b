package dataio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JustUsingaWebsite/data-compare/internal/types"
)

// Save serializes a result table, dispatching on the output extension:
//   - .csv         header row (when the table carries one), then rows
//   - .xls/.xlsx   single sheet, header row, no index column
//   - .txt         tab-joined cell values per line, no header
//   - .json        one JSON object per line, keyed by header
func Save(tbl types.TableData, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return saveCSV(tbl, path)
	case ".xls", ".xlsx":
		return saveExcel(tbl, path)
	case ".txt":
		return saveText(tbl, path)
	case ".json":
		return saveJSONLines(tbl, path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func saveCSV(tbl types.TableData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(tbl.Header) > 0 {
		if err := w.Write(tbl.Header); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	for _, row := range tbl.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func saveExcel(tbl types.TableData, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	line := 1
	if len(tbl.Header) > 0 {
		if err := writeSheetRow(f, sheet, line, tbl.Header); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		line++
	}
	for _, row := range tbl.Rows {
		if err := writeSheetRow(f, sheet, line, row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		line++
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, line int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	vals := make([]any, len(row))
	for i, v := range row {
		vals[i] = v
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

func saveText(tbl types.TableData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, row := range tbl.Rows {
		if _, err := fmt.Fprintln(f, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func saveJSONLines(tbl types.TableData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, row := range tbl.Rows {
		rec := make(map[string]string, len(row))
		for i, v := range row {
			rec[columnName(tbl.Header, i)] = v
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// columnName falls back to the positional index when the table has no
// header for that position.
func columnName(header []string, i int) string {
	if i < len(header) && strings.TrimSpace(header[i]) != "" {
		return header[i]
	}
	return strconv.Itoa(i)
}
