package ingest

import (
	"testing"

	"npldisk/internal/reader"
)

func metaWithHeaders(name string, headers ...string) reader.SheetMeta {
	return reader.SheetMeta{Name: name, Headers: headers}
}

func TestResolveColumnsRuleFallback(t *testing.T) {
	meta := metaWithHeaders("채권일반정보",
		"일련번호", "차주일련번호", "차주명", "대출일련번호", "약정이자율(%)", "채권액 합계")

	info := ResolveColumns(nil, BankUnknown, meta, SheetLoan)

	want := map[string]string{
		"serial_number":        "일련번호",
		"borrower_number":      "차주일련번호",
		"borrower_name":        "차주명",
		"account_serial":       "대출일련번호",
		"normal_interest_rate": "약정이자율(%)",
		"total_claim_amount":   "채권액 합계",
	}
	if len(info.Columns) != len(want) {
		t.Fatalf("resolved %d columns, want %d: %+v", len(info.Columns), len(want), info.Columns)
	}
	for id, source := range want {
		col, ok := info.Lookup(id)
		if !ok {
			t.Errorf("canonical id %q not resolved", id)
			continue
		}
		if col.SourceName != source {
			t.Errorf("%q resolved from %q, want %q", id, col.SourceName, source)
		}
	}
}

func TestResolveColumnsFirstClaimWins(t *testing.T) {
	// Both headers map to account_serial; only the leftmost may claim it.
	meta := metaWithHeaders("채권일반정보", "대출일련번호", "채권일련번호")
	info := ResolveColumns(nil, BankUnknown, meta, SheetLoan)

	seen := map[string]int{}
	for _, col := range info.Columns {
		seen[col.CanonicalID]++
	}
	if seen["account_serial"] != 1 {
		t.Fatalf("account_serial claimed %d times", seen["account_serial"])
	}
	col, _ := info.Lookup("account_serial")
	if col.SourceName != "대출일련번호" {
		t.Errorf("claimed by %q, want leftmost 대출일련번호", col.SourceName)
	}
}

func TestResolveColumnsTemplateWins(t *testing.T) {
	notes := ""
	tpl := &MappingTemplate{
		Banks: map[string]BankConfig{
			"KB": {Sheets: map[string]SheetConfig{
				"차주일반정보": {
					SheetName: "Sheet A(차주일반정보)",
					Notes:     notes,
					Columns: map[string]*string{
						"borrower_number": strPtr("고객관리번호"),
					},
				},
			}},
		},
	}

	meta := metaWithHeaders("Sheet A(차주일반정보)", "고객관리번호", "차주명")
	info := ResolveColumns(tpl, BankKB, meta, SheetBorrowerGeneral)

	col, ok := info.Lookup("borrower_number")
	if !ok {
		t.Fatal("borrower_number not resolved via template")
	}
	if !col.FromTemplate || col.SourceName != "고객관리번호" {
		t.Errorf("got %+v, want template binding to 고객관리번호", col)
	}
	if _, ok := info.Lookup("borrower_name"); !ok {
		t.Error("rule fallback should still resolve 차주명")
	}
}

func TestMissingRequired(t *testing.T) {
	meta := metaWithHeaders("채권일반정보", "차주명")
	info := ResolveColumns(nil, BankUnknown, meta, SheetLoan)

	missing := info.MissingRequired()
	found := map[string]bool{}
	for _, id := range missing {
		found[id] = true
	}
	if !found["borrower_number"] || !found["account_serial"] {
		t.Errorf("missing = %v, want borrower_number and account_serial", missing)
	}
}

func TestRowValues(t *testing.T) {
	meta := metaWithHeaders("채권일반정보", "차주일련번호", "대출일련번호")
	info := ResolveColumns(nil, BankUnknown, meta, SheetLoan)

	values := info.RowValues(map[string]reader.CellValue{
		"차주일련번호": reader.TextCell("R-0001"),
	})
	if values["borrower_number"].String() != "R-0001" {
		t.Errorf("borrower_number = %q", values["borrower_number"].String())
	}
	if !values["account_serial"].IsEmpty() {
		t.Error("absent cell should read empty")
	}
}

func strPtr(s string) *string { return &s }
