package batchfile

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"bioportal/internal/core/domain"
)

func TestParse_CSV(t *testing.T) {
	data := []byte("\ufeffoutput_prefix,num_designs,constraints\nbinder_a,2,\n,1,{}\n\n")

	table, err := Parse("batch.CSV", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if table.Columns[0] != "output_prefix" {
		t.Errorf("BOM not stripped from header: %q", table.Columns[0])
	}
	if got := table.Records[0]["output_prefix"]; got != "binder_a" {
		t.Errorf("row 0 output_prefix = %q", got)
	}
	if _, ok := table.Records[0]["constraints"]; ok {
		t.Error("empty cell should be absent from the record")
	}
	if _, ok := table.Records[1]["output_prefix"]; ok {
		t.Error("empty prefix should be absent from the record")
	}
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"id", "num_designs"},
		{"scaffold_1", 3},
		{"scaffold_2", 1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	table, err := Parse("batch.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if got := table.Records[0]["num_designs"]; got != "3" {
		t.Errorf("num_designs = %q, want 3", got)
	}
	if got := table.Records[1]["id"]; got != "scaffold_2" {
		t.Errorf("id = %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want error
		msg  string
	}{
		{"unsupported extension", "batch.json", "{}", domain.ErrUnsupportedFormat, MsgUnsupported},
		{"legacy excel", "batch.xls", "x", domain.ErrUnsupportedFormat, MsgUnsupported},
		{"empty csv", "batch.csv", "", domain.ErrEmptyInput, MsgEmpty},
		{"header only", "batch.csv", "id,num_designs\n", domain.ErrEmptyInput, MsgEmpty},
		{"empty xlsx", "batch.xlsx", "", domain.ErrEmptyInput, MsgEmpty},
		{"corrupt xlsx", "batch.xlsx", "not a zip archive", domain.ErrUnsupportedFormat, ""},
		{"too many fields", "batch.csv", "id\na,b\n", domain.ErrUnsupportedFormat, ""},
		{"bad quoting", "batch.csv", "id\n\"a\n", domain.ErrUnsupportedFormat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.file, []byte(tt.data))
			if table != nil {
				t.Errorf("expected no table on error, got %d rows", table.Len())
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.msg != "" && Message(err) != tt.msg {
				t.Errorf("Message = %q, want %q", Message(err), tt.msg)
			}
		})
	}
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{"id", "", "id", " id "})
	want := []string{"id", "Unnamed: 1", "id.1", "id.2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}
