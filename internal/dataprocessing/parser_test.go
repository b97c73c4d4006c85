package dataprocessing

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hmireport/internal/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestIngestor(limit int) *Ingestor {
	opts := DefaultIngestOptions()
	opts.RowLimit = limit
	return NewIngestor(opts, quietLogger())
}

func TestParse_DelimitersAndPreamble(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		delimiter  rune
		header     []string
		rows       [][]string
		headerLine int
	}{
		{
			name:      "comma without preamble",
			input:     "Date,Time,Alarm Message,Alarm Status\n06/25/2025,14:02:10,Tank overflow,ACTIVE\n",
			delimiter: ',',
			header:    []string{"Date", "Time", "Alarm Message", "Alarm Status"},
			rows:      [][]string{{"06/25/2025", "14:02:10", "Tank overflow", "ACTIVE"}},
		},
		{
			name: "tab with vendor preamble",
			input: "Exported by WinCC\nStation: LINE 2\n\n" +
				"Date\tTime\tUser\n06/25/2025\t08:00:00\tadmin\n06/25/2025\t08:05:00\toperator\n",
			delimiter:  '\t',
			header:     []string{"Date", "Time", "User"},
			rows:       [][]string{{"06/25/2025", "08:00:00", "admin"}, {"06/25/2025", "08:05:00", "operator"}},
			headerLine: 3,
		},
		{
			name:      "semicolon with decimal commas",
			input:     "Date;Time;TEMP_AIR_IN\n06/25/2025;10:00:00;21,46\n06/25/2025;10:01:00;21,51\n",
			delimiter: ';',
			header:    []string{"Date", "Time", "TEMP_AIR_IN"},
			rows:      [][]string{{"06/25/2025", "10:00:00", "21,46"}, {"06/25/2025", "10:01:00", "21,51"}},
		},
		{
			name: "preamble without header hint uses modal width",
			input: "Report generated 2025-06-25\n" +
				"Stamp,Who,What\n1,a,x\n2,b,y\n3,c,z\n",
			delimiter:  ',',
			header:     []string{"Stamp", "Who", "What"},
			rows:       [][]string{{"1", "a", "x"}, {"2", "b", "y"}, {"3", "c", "z"}},
			headerLine: 1,
		},
		{
			name:      "quoted cells and placeholders",
			input:     "\"Date\",\"Time\",\"Value\"\n\"06/25/2025\",\"10:00:00\",\"nan\"\n06/25/2025,10:01:00,'-\n",
			delimiter: ',',
			header:    []string{"Date", "Time", "Value"},
			rows:      [][]string{{"06/25/2025", "10:00:00", ""}, {"06/25/2025", "10:01:00", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := newTestIngestor(0).Parse("test.csv", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.delimiter, table.Delimiter)
			assert.Equal(t, tt.header, table.Header)
			assert.Equal(t, tt.rows, table.Rows)
			assert.Equal(t, tt.headerLine, table.HeaderLine)
		})
	}
}

func TestParse_RowsAreRectangular(t *testing.T) {
	input := "Date,Time,Msg,Status\n" +
		"06/25/2025,10:00:00\n" + // short
		"06/25/2025,10:01:00,Pump,ON,extra,more\n" + // long, non-empty overflow
		"06/25/2025,10:02:00,Valve,OFF,,\n" // trailing empty fields
	table, err := newTestIngestor(0).Parse("test.csv", []byte(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Header))
	}
	assert.Equal(t, []string{"06/25/2025", "10:00:00", "", ""}, table.Rows[0])
	assert.Equal(t, []string{"06/25/2025", "10:01:00", "Pump", "ON"}, table.Rows[1])

	require.Len(t, table.Warnings, 1, "only rows losing data are reported")
	assert.Contains(t, table.Warnings[0], "line 3")
	assert.Contains(t, table.Warnings[0], "2 extra field(s)")
}

func TestParse_RowLimit(t *testing.T) {
	input := "Date,Time\n1,a\n2,b\n3,c\n4,d\n"
	table, err := newTestIngestor(2).Parse("test.csv", []byte(input))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "2", table.Rows[1][0])
}

func TestParse_HeaderOnlyIsEmptyData(t *testing.T) {
	table, err := newTestIngestor(0).Parse("alarm.csv", []byte("Date,Time,Alarm Message,Alarm Status\n\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyData))
	assert.False(t, apperrors.IsFatal(err))
	assert.Equal(t, []string{"Date", "Time", "Alarm Message", "Alarm Status"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestParse_EmptyInput(t *testing.T) {
	table, err := newTestIngestor(0).Parse("empty.csv", nil)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyData))
	assert.Empty(t, table.Header)
}

func TestParse_Encodings(t *testing.T) {
	t.Run("utf-8 with BOM", func(t *testing.T) {
		input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Time,Message\n06/25/2025,10:00:00,Température haute\n")...)
		table, err := newTestIngestor(0).Parse("bom.csv", input)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, table.Encoding)
		assert.Equal(t, "Date", table.Header[0])
		assert.Equal(t, "Température haute", table.Rows[0][2])
	})

	t.Run("windows-1252 fallback", func(t *testing.T) {
		// 0xE9 is é and 0xB0 is ° in Windows-1252; neither is valid UTF-8 alone
		input := []byte("Date,Time,Message\n06/25/2025,10:00:00,Temp\xe9rature 5\xb0C\n")
		table, err := newTestIngestor(0).Parse("latin.csv", input)
		require.NoError(t, err)
		assert.Equal(t, EncodingWindows1252, table.Encoding)
		assert.Equal(t, "Température 5°C", table.Rows[0][2])
	})

	t.Run("utf-16 little endian", func(t *testing.T) {
		text := "Date\tTime\n06/25/2025\t10:00:00\n"
		input := []byte{0xFF, 0xFE}
		for _, r := range text {
			input = append(input, byte(r), 0)
		}
		table, err := newTestIngestor(0).Parse("wide.csv", input)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF16, table.Encoding)
		assert.Equal(t, '\t', table.Delimiter)
		assert.Equal(t, []string{"06/25/2025", "10:00:00"}, table.Rows[0])
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ALARM.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Time\n06/25/2025,10:00:00\n"), 0644))

	table, err := newTestIngestor(0).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Rows, 1)

	_, err = newTestIngestor(0).ParseFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsFatal(err))
}

func TestParseFile_Workbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Batch export"},
		{"Date", "Time", "USER", "TEMP_AIR_IN", "TEMP_AIR_IN_QF"},
		{"06/25/2025", "10:00:00", "op1", "21.46", "192"},
		{"06/25/2025", "10:01:00", "op1", "21.51"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "BATCH.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := newTestIngestor(0).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingWorkbook, table.Encoding)
	assert.Equal(t, 1, table.HeaderLine)
	assert.Equal(t, []string{"Date", "Time", "USER", "TEMP_AIR_IN", "TEMP_AIR_IN_QF"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"06/25/2025", "10:01:00", "op1", "21.51", ""}, table.Rows[1])
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain  ", "plain"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"nan", ""},
		{"NaN", ""},
		{"'-", ""},
		{"it's fine", "it's fine"},
		{`"`, `"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanCell(tt.in), "cleanCell(%q)", tt.in)
	}
}
