package ingest

import "testing"

func ibkTemplate() *MappingTemplate {
	sheet := func(name string) SheetConfig {
		return SheetConfig{SheetName: name, Columns: map[string]*string{}}
	}
	return &MappingTemplate{
		Version: "1.0",
		Banks: map[string]BankConfig{
			"IBK": {Sheets: map[string]SheetConfig{
				"차주일반정보":  sheet("Sheet A"),
				"회생차주정보":  sheet("Sheet A-1"),
				"채권일반정보":  sheet("Sheet B"),
				"물건정보":    sheet("Sheet C-1"),
				"등기부등본정보": sheet("Sheet C-2"),
				"신용보증서":   sheet("Sheet D"),
			}},
			"KB": {Sheets: map[string]SheetConfig{
				"차주일반정보": sheet("Sheet A(차주일반정보)"),
				"채권일반정보": sheet("Sheet B(채권일반정보)"),
			}},
		},
	}
}

func TestClassifySheetExact(t *testing.T) {
	tpl := ibkTemplate()
	tests := []struct {
		sheet string
		want  SheetType
	}{
		{"Sheet A", SheetBorrowerGeneral},
		{"Sheet A-1", SheetBorrowerRestructuring},
		{"Sheet B", SheetLoan},
		{"Sheet C-1", SheetProperty},
		{"Sheet C-2", SheetRegistryDetail},
		{"Sheet D", SheetGuarantee},
		{"sheet a", SheetBorrowerGeneral},
		{"집계표", SheetUnknown},
	}
	for _, tt := range tests {
		if got := ClassifySheet(tpl, BankIBK, tt.sheet); got != tt.want {
			t.Errorf("ClassifySheet(IBK, %q) = %v, want %v", tt.sheet, got, tt.want)
		}
	}
}

func TestClassifySheetLongestContainmentWins(t *testing.T) {
	tpl := ibkTemplate()
	// "Sheet A-1 (회생)" matches both "Sheet A" and "Sheet A-1" by
	// containment; the longer configured name must win.
	if got := ClassifySheet(tpl, BankIBK, "Sheet A-1 (회생)"); got != SheetBorrowerRestructuring {
		t.Errorf("got %v, want BorrowerRestructuring", got)
	}
}

func TestClassifySheetUnknownBank(t *testing.T) {
	tpl := ibkTemplate()
	if got := ClassifySheet(tpl, BankNH, "Sheet A"); got != SheetUnknown {
		t.Errorf("got %v, want Unknown for unconfigured bank", got)
	}
}

func TestSheetTypeCanonicalRoundTrip(t *testing.T) {
	for _, st := range CanonicalSheetTypes {
		if got := SheetTypeFromCanonical(st.CanonicalName()); got != st {
			t.Errorf("%v canonical %q parsed back as %v", st, st.CanonicalName(), got)
		}
	}
	if got := SheetTypeFromCanonical("없는시트"); got != SheetUnknown {
		t.Errorf("unexpected %v", got)
	}
}

func TestParseSheetType(t *testing.T) {
	tests := []struct {
		in   string
		want SheetType
	}{
		{"BorrowerGeneral", SheetBorrowerGeneral},
		{"loan", SheetLoan},
		{" Guarantee ", SheetGuarantee},
		{"차주일반정보", SheetBorrowerGeneral},
		{"등기부등본정보", SheetRegistryDetail},
		{"Unknown", SheetUnknown},
		{"뭔가다른시트", SheetUnknown},
	}
	for _, tt := range tests {
		if got := ParseSheetType(tt.in); got != tt.want {
			t.Errorf("ParseSheetType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
