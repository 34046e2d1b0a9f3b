package dataio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/data-compare/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv natural columns", func(t *testing.T) {
		path := writeFile(t, dir, "in.csv", "ip,notes\n10.0.0.5,noise\n9.9.9.9,x\n")
		tbl, err := Load(path)
		require.NoError(t, err)
		assert.True(t, tbl.HasHeader)
		assert.Equal(t, []string{"ip", "notes"}, tbl.Header)
		assert.Equal(t, [][]string{{"10.0.0.5", "noise"}, {"9.9.9.9", "x"}}, tbl.Rows)
	})

	t.Run("txt one row per line", func(t *testing.T) {
		path := writeFile(t, dir, "in.txt", "10.0.0.1\nbad\n10.0.0.2\n")
		tbl, err := Load(path)
		require.NoError(t, err)
		assert.False(t, tbl.HasHeader)
		assert.Equal(t, []string{DataColumn}, tbl.Header)
		assert.Equal(t, [][]string{{"10.0.0.1"}, {"bad"}, {"10.0.0.2"}}, tbl.Rows)
	})

	t.Run("json line-delimited records", func(t *testing.T) {
		path := writeFile(t, dir, "in.json", `{"ip":"10.0.0.5","n":7}`+"\n"+`{"ip":"9.9.9.9"}`+"\n")
		tbl, err := Load(path)
		require.NoError(t, err)
		assert.True(t, tbl.HasHeader)
		assert.Equal(t, []string{"ip", "n"}, tbl.Header)
		assert.Equal(t, [][]string{{"10.0.0.5", "7"}, {"9.9.9.9", ""}}, tbl.Rows)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "in.xml", "<x/>")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestLoadSingleColumn(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv flattened cell-wise, no header assumed", func(t *testing.T) {
		path := writeFile(t, dir, "in.csv", "10.0.0.1,noise\n10.0.0.2,x\n")
		tbl, err := LoadSingleColumn(path)
		require.NoError(t, err)
		assert.False(t, tbl.HasHeader)
		assert.Equal(t, []string{DataColumn}, tbl.Header)
		assert.Equal(t, [][]string{
			{"10.0.0.1"}, {"noise"}, {"10.0.0.2"}, {"x"},
		}, tbl.Rows)
	})

	t.Run("json is not a single-column input", func(t *testing.T) {
		path := writeFile(t, dir, "in.json", `{"a":1}`)
		_, err := LoadSingleColumn(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	tbl := types.TableData{
		HasHeader: true,
		Header:    []string{"ip", "notes"},
		Rows:      [][]string{{"10.0.0.5", "noise"}, {"9.9.9.9", "x"}},
	}

	t.Run("csv round-trip", func(t *testing.T) {
		path := filepath.Join(dir, "out.csv")
		require.NoError(t, Save(tbl, path))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, tbl.Header, got.Header)
		assert.Equal(t, tbl.Rows, got.Rows)
	})

	t.Run("xlsx round-trip", func(t *testing.T) {
		path := filepath.Join(dir, "out.xlsx")
		require.NoError(t, Save(tbl, path))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, tbl.Header, got.Header)
		assert.Equal(t, tbl.Rows, got.Rows)
	})

	t.Run("json round-trip", func(t *testing.T) {
		path := filepath.Join(dir, "out.json")
		require.NoError(t, Save(tbl, path))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, tbl.Header, got.Header) // already sorted
		assert.Equal(t, tbl.Rows, got.Rows)
	})

	t.Run("txt tab-joined, no header", func(t *testing.T) {
		path := filepath.Join(dir, "out.txt")
		require.NoError(t, Save(tbl, path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5\tnoise\n9.9.9.9\tx\n", string(data))
	})

	t.Run("txt single column, one value per line", func(t *testing.T) {
		path := filepath.Join(dir, "vals.txt")
		single := types.TableData{
			HasHeader: true,
			Header:    []string{"Non-Matching Ip"},
			Rows:      [][]string{{"10.0.0.2"}},
		}
		require.NoError(t, Save(single, path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.2\n", string(data))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		err := Save(tbl, filepath.Join(dir, "out.xml"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
