package reader

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1,234,567", "1234567", true},
		{" 42 ", "42", true},
		{"1 234", "1234", true},
		{"-", "", false},
		{"", "", false},
		{"5%", "0.05", true},
		{"12.5%", "0.125", true},
		{"-3.5", "-3.5", true},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDecimal(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDecimal(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCellFromString(t *testing.T) {
	if c := CellFromString("   "); c.Kind != KindEmpty {
		t.Errorf("blank cell kind = %v, want KindEmpty", c.Kind)
	}
	if c := CellFromString("1,000"); c.Kind != KindNumber || !c.Number.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("numeric cell = %+v", c)
	}
	// Leading zeros mean an identifier, not a number.
	if c := CellFromString("00123"); c.Kind != KindText {
		t.Errorf("leading-zero cell kind = %v, want KindText", c.Kind)
	}
	if c := CellFromString("차주명"); c.Kind != KindText {
		t.Errorf("korean text kind = %v, want KindText", c.Kind)
	}
}

func TestCellDate(t *testing.T) {
	for _, in := range []string{"2023-06-15", "2023/06/15", "2023.06.15", "20230615"} {
		got, ok := TextCell(in).Date()
		if !ok {
			t.Errorf("Date(%q) failed", in)
			continue
		}
		want := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Date(%q) = %v, want %v", in, got, want)
		}
	}

	// Spreadsheet serial: 45000 is 2023-03-15.
	got, ok := NumberCell(decimal.NewFromInt(45000)).Date()
	if !ok || got.Year() != 2023 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("serial date = %v ok=%v", got, ok)
	}

	if _, ok := TextCell("-").Date(); ok {
		t.Error("dash parsed as date")
	}
}

func TestCellIsEmpty(t *testing.T) {
	if !EmptyCell().IsEmpty() {
		t.Error("EmptyCell not empty")
	}
	if !TextCell(" - ").IsEmpty() {
		t.Error("dash text not treated as empty")
	}
	if TextCell("x").IsEmpty() {
		t.Error("text cell reported empty")
	}
	if NumberCell(decimal.Zero).IsEmpty() {
		t.Error("zero number reported empty; zero is a value")
	}
}
