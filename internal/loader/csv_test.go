package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

func TestCSV(t *testing.T) {
	t.Run("typed cells", func(t *testing.T) {
		input := strings.Join([]string{
			"Current,JB_Property,Ratio,Remark",
			"2.5,YES,5.0,ok",
			"1.8,NO,4.0,",
		}, "\n")

		tbl, err := CSV(strings.NewReader(input), CSVOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Current", "JB_Property", "Ratio", "Remark"}, tbl.Columns)
		require.Len(t, tbl.Rows, 2)

		cell, ok := tbl.Rows[0].Lookup("Current")
		require.True(t, ok)
		assert.Equal(t, table.Number(2.5), cell)

		cell, ok = tbl.Rows[0].Lookup("JB_Property")
		require.True(t, ok)
		assert.Equal(t, table.String("YES"), cell)

		cell, ok = tbl.Rows[1].Lookup("Remark")
		require.True(t, ok)
		assert.True(t, cell.IsEmpty())
	})

	t.Run("custom delimiter", func(t *testing.T) {
		tbl, err := CSV(strings.NewReader("A;B\n1;2\n"), CSVOptions{Delimiter: ';'})
		require.NoError(t, err)
		require.Len(t, tbl.Rows, 1)
		cell, ok := tbl.Rows[0].Lookup("B")
		require.True(t, ok)
		assert.Equal(t, table.Number(2), cell)
	})

	t.Run("header below leading junk rows", func(t *testing.T) {
		input := strings.Join([]string{
			"Motor Export 2026-08-29",
			"A,B",
			"1,2",
		}, "\n")

		tbl, err := CSV(strings.NewReader(input), CSVOptions{HeaderRow: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, tbl.Columns)
		assert.Len(t, tbl.Rows, 1)
	})

	t.Run("ragged rows read as empty", func(t *testing.T) {
		tbl, err := CSV(strings.NewReader("A,B,C\n1,2\n"), CSVOptions{})
		require.NoError(t, err)
		cell, ok := tbl.Rows[0].Lookup("C")
		require.True(t, ok)
		assert.True(t, cell.IsEmpty())
	})

	t.Run("header row out of range", func(t *testing.T) {
		_, err := CSV(strings.NewReader("A,B\n"), CSVOptions{HeaderRow: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header row")
	})

	t.Run("negative header row", func(t *testing.T) {
		_, err := CSV(strings.NewReader("A,B\n1,2\n"), CSVOptions{HeaderRow: -1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header row")
	})
}

func TestOpen_DispatchByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "motors.csv")
	require.NoError(t, os.WriteFile(path, []byte("Current\n2.5\n"), 0o644))

	tbl, err := Open(path, ExcelOptions{})
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)

	_, err = Open(filepath.Join(dir, "absent.xlsx"), ExcelOptions{})
	assert.Error(t, err)
}
