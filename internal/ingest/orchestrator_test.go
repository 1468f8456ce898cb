package ingest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"npldisk/internal/models"
	"npldisk/internal/reader"
	"npldisk/internal/repository"
)

// fakeWorkbook serves canned sheets without touching the filesystem.
type fakeWorkbook struct {
	order  []string
	heads  map[string][]string
	sheets map[string][]map[string]reader.CellValue
}

func (f *fakeWorkbook) SheetNames() []string { return f.order }

func (f *fakeWorkbook) Sheets() ([]reader.SheetMeta, error) {
	var metas []reader.SheetMeta
	for i, name := range f.order {
		metas = append(metas, reader.SheetMeta{
			Name:     name,
			Index:    i,
			RowCount: len(f.sheets[name]),
			Headers:  f.heads[name],
		})
	}
	return metas, nil
}

func (f *fakeWorkbook) ReadSheet(name string) ([]string, []map[string]reader.CellValue, error) {
	return f.heads[name], f.sheets[name], nil
}

func (f *fakeWorkbook) Close() error { return nil }

// fakeState backs in-memory repo fakes that mirror the pg write policies.
type fakeState struct {
	borrowers      map[string]*models.Borrower
	loans          map[string]*models.Loan
	restructurings []models.BorrowerRestructuring
	properties     []models.Property
	registries     []models.RegistryDetail
	guarantees     []models.Guarantee
	rightAnalyses  map[uuid.UUID]models.RightAnalysis
	audits         []models.SheetMappingAudit
}

type fakeBorrowers struct{ s *fakeState }

func (f fakeBorrowers) Upsert(ctx context.Context, b *models.Borrower) (bool, error) {
	if existing, ok := f.s.borrowers[b.BorrowerNumber]; ok {
		b.ID = existing.ID
		f.s.borrowers[b.BorrowerNumber] = b
		return false, nil
	}
	f.s.borrowers[b.BorrowerNumber] = b
	return true, nil
}

func (f fakeBorrowers) IDByNumber(ctx context.Context, number string) (uuid.UUID, bool, error) {
	if b, ok := f.s.borrowers[number]; ok {
		return b.ID, true, nil
	}
	return uuid.Nil, false, nil
}

type fakeLoans struct{ s *fakeState }

func (f fakeLoans) Upsert(ctx context.Context, l *models.Loan) (bool, error) {
	if existing, ok := f.s.loans[l.AccountSerial]; ok {
		l.ID = existing.ID
		f.s.loans[l.AccountSerial] = l
		return false, nil
	}
	f.s.loans[l.AccountSerial] = l
	return true, nil
}

type fakeRestructurings struct{ s *fakeState }

func (f fakeRestructurings) InsertBatch(ctx context.Context, rows []models.BorrowerRestructuring) (int, error) {
	f.s.restructurings = append(f.s.restructurings, rows...)
	return len(rows), nil
}

type fakeProperties struct{ s *fakeState }

func (f fakeProperties) Insert(ctx context.Context, p *models.Property) error {
	f.s.properties = append(f.s.properties, *p)
	return nil
}

func (f fakeProperties) InsertRegistryBatch(ctx context.Context, rows []models.RegistryDetail) (int, error) {
	f.s.registries = append(f.s.registries, rows...)
	return len(rows), nil
}

type fakeGuarantees struct{ s *fakeState }

func (f fakeGuarantees) InsertBatch(ctx context.Context, rows []models.Guarantee) (int, error) {
	f.s.guarantees = append(f.s.guarantees, rows...)
	return len(rows), nil
}

type fakeRightAnalyses struct{ s *fakeState }

func (f fakeRightAnalyses) UpsertByProperty(ctx context.Context, ra *models.RightAnalysis) error {
	f.s.rightAnalyses[ra.PropertyID] = *ra
	return nil
}

type fakeAudits struct{ s *fakeState }

func (f fakeAudits) Insert(ctx context.Context, a *models.SheetMappingAudit) error {
	f.s.audits = append(f.s.audits, *a)
	return nil
}

func newFakeRepos() (*fakeState, *repository.Repositories) {
	s := &fakeState{
		borrowers:     map[string]*models.Borrower{},
		loans:         map[string]*models.Loan{},
		rightAnalyses: map[uuid.UUID]models.RightAnalysis{},
	}
	return s, &repository.Repositories{
		Borrowers:      fakeBorrowers{s},
		Loans:          fakeLoans{s},
		Restructurings: fakeRestructurings{s},
		Properties:     fakeProperties{s},
		Guarantees:     fakeGuarantees{s},
		RightAnalyses:  fakeRightAnalyses{s},
		Audits:         fakeAudits{s},
	}
}

func testTemplateStore(t *testing.T) *TemplateStore {
	t.Helper()
	return NewTemplateStore(writeTemplate(t, `{
		"version": "1.0",
		"banks": {
			"IBK": {
				"sheets": {
					"차주일반정보": {"sheet_name": "Sheet A", "columns": {}},
					"회생차주정보": {"sheet_name": "Sheet A-1", "columns": {}},
					"채권일반정보": {"sheet_name": "Sheet B", "columns": {}},
					"물건정보": {"sheet_name": "Sheet C-1", "columns": {}},
					"등기부등본정보": {"sheet_name": "Sheet C-2", "columns": {}},
					"신용보증서": {"sheet_name": "Sheet D", "columns": {}}
				}
			}
		}
	}`))
}

func textRow(pairs map[string]string) map[string]reader.CellValue {
	row := map[string]reader.CellValue{}
	for k, v := range pairs {
		row[k] = reader.CellFromString(v)
	}
	return row
}

func ibkWorkbook() *fakeWorkbook {
	borrowerHeads := []string{"차주일련번호", "차주명", "대출원금잔액"}
	loanHeads := []string{"차주일련번호", "대출일련번호", "정상이자율", "연체이자율", "미상환원금잔액", "미수이자", "채권액 합계"}
	propertyHeads := []string{"차주일련번호", "물건번호", "담보소재지1", "담보소재지2", "선순위 임금채권"}

	return &fakeWorkbook{
		order: []string{"Sheet A", "Sheet A-1", "Sheet B", "Sheet C-1"},
		heads: map[string][]string{
			"Sheet A":   borrowerHeads,
			"Sheet B":   loanHeads,
			"Sheet C-1": propertyHeads,
		},
		sheets: map[string][]map[string]reader.CellValue{
			"Sheet A": {
				textRow(map[string]string{"차주일련번호": "R-0001", "차주명": "홍길동", "대출원금잔액": "1,000,000"}),
				textRow(map[string]string{"차주일련번호": "R-0002", "차주명": "김철수", "대출원금잔액": "-"}),
			},
			"Sheet A-1": nil,
			"Sheet B": {
				textRow(map[string]string{
					"차주일련번호": "R-0001", "대출일련번호": "1",
					"정상이자율": "5%", "연체이자율": "",
					"미상환원금잔액": "900,000", "미수이자": "100,000",
					"채권액 합계": "",
				}),
			},
			"Sheet C-1": {
				textRow(map[string]string{
					"차주일련번호": "R-0001", "물건번호": "1",
					"담보소재지1": "서울특별시", "담보소재지2": "강남구",
					"선순위 임금채권": "50,000",
				}),
			},
		},
	}
}

func TestProcessWorkbook(t *testing.T) {
	state, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	res, err := o.ProcessWorkbook(context.Background(), ibkWorkbook(), UploadOptions{
		Bank:     BankIBK,
		FileName: "ibk_disk.xlsx",
	})
	if err != nil {
		t.Fatalf("ProcessWorkbook: %v", err)
	}

	if len(state.borrowers) != 2 {
		t.Errorf("borrowers = %d, want 2", len(state.borrowers))
	}
	if len(state.loans) != 1 {
		t.Errorf("loans = %d, want 1", len(state.loans))
	}

	loan := state.loans["R-0001-1"]
	if loan == nil {
		t.Fatal("loan key not composited to R-0001-1")
	}
	if loan.BorrowerID == nil {
		t.Error("loan not linked to its borrower")
	}
	if loan.TotalClaimAmount == nil || !loan.TotalClaimAmount.Equal(decimal.NewFromInt(1_000_000)) {
		t.Errorf("total claim = %v, want derived 1000000", loan.TotalClaimAmount)
	}
	if loan.OverdueInterestRate == nil || !loan.OverdueInterestRate.Equal(decimal.NewFromFloat(0.08)) {
		t.Errorf("overdue rate = %v, want complemented 0.08", loan.OverdueInterestRate)
	}

	if len(state.properties) != 1 {
		t.Fatalf("properties = %d, want 1", len(state.properties))
	}
	p := state.properties[0]
	if p.AddressFull == nil || *p.AddressFull != "서울특별시 강남구" {
		t.Errorf("address_full = %v", p.AddressFull)
	}
	if len(state.rightAnalyses) != 1 {
		t.Errorf("right analyses = %d, want 1", len(state.rightAnalyses))
	}
	for _, ra := range state.rightAnalyses {
		if ra.WageClaimDd == nil || !ra.WageClaimDd.Equal(decimal.NewFromInt(50_000)) {
			t.Errorf("wage claim dd = %v", ra.WageClaimDd)
		}
	}

	// One audit record per processed sheet (the empty A-1 included).
	if len(state.audits) != len(res.Sheets) {
		t.Errorf("audits = %d, sheets = %d", len(state.audits), len(res.Sheets))
	}
}

func TestProcessWorkbookRerunUpdates(t *testing.T) {
	state, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	wb := ibkWorkbook()
	opts := UploadOptions{Bank: BankIBK, FileName: "ibk_disk.xlsx"}

	if _, err := o.ProcessWorkbook(context.Background(), wb, opts); err != nil {
		t.Fatal(err)
	}
	res, err := o.ProcessWorkbook(context.Background(), ibkWorkbook(), opts)
	if err != nil {
		t.Fatal(err)
	}

	// Borrowers and loans refresh in place; properties append.
	if len(state.borrowers) != 2 || len(state.loans) != 1 {
		t.Errorf("after rerun borrowers=%d loans=%d, want 2/1", len(state.borrowers), len(state.loans))
	}
	if len(state.properties) != 2 {
		t.Errorf("after rerun properties = %d, want appended 2", len(state.properties))
	}

	for _, sr := range res.Sheets {
		if sr.SheetType == SheetBorrowerGeneral.String() && (sr.Created != 0 || sr.Updated != 2) {
			t.Errorf("rerun borrower sheet created=%d updated=%d", sr.Created, sr.Updated)
		}
	}
}

func TestProcessWorkbookRowFailureIsolated(t *testing.T) {
	state, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	wb := &fakeWorkbook{
		order: []string{"Sheet A"},
		heads: map[string][]string{"Sheet A": {"차주일련번호", "차주명"}},
		sheets: map[string][]map[string]reader.CellValue{
			"Sheet A": {
				textRow(map[string]string{"차주일련번호": "", "차주명": "무번호"}),
				textRow(map[string]string{"차주일련번호": "R-0009", "차주명": "정상"}),
			},
		},
	}

	res, err := o.ProcessWorkbook(context.Background(), wb, UploadOptions{Bank: BankIBK})
	if err != nil {
		t.Fatal(err)
	}
	if len(state.borrowers) != 1 {
		t.Errorf("borrowers = %d, want the valid row persisted", len(state.borrowers))
	}
	sr := res.Sheets[0]
	if sr.Failed != 1 || sr.Created != 1 {
		t.Errorf("failed=%d created=%d, want 1/1", sr.Failed, sr.Created)
	}
	if len(sr.Errors) == 0 {
		t.Error("row error not reported")
	}
}

func TestProcessWorkbookSheetTypeOverride(t *testing.T) {
	state, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	// "차주현황" matches no configured or canonical name; the caller pins it.
	wb := &fakeWorkbook{
		order: []string{"차주현황"},
		heads: map[string][]string{"차주현황": {"차주일련번호", "차주명"}},
		sheets: map[string][]map[string]reader.CellValue{
			"차주현황": {
				textRow(map[string]string{"차주일련번호": "R-0021", "차주명": "박영희"}),
			},
		},
	}

	res, err := o.ProcessWorkbook(context.Background(), wb, UploadOptions{
		Bank:       BankIBK,
		SheetTypes: map[string]SheetType{"차주현황": SheetBorrowerGeneral},
	})
	if err != nil {
		t.Fatalf("ProcessWorkbook: %v", err)
	}
	if len(state.borrowers) != 1 {
		t.Fatalf("borrowers = %d, want pinned sheet processed", len(state.borrowers))
	}
	if res.Sheets[0].SheetType != SheetBorrowerGeneral.String() {
		t.Errorf("sheet type = %q, want BorrowerGeneral", res.Sheets[0].SheetType)
	}

	// Without the pin the same workbook has no recognizable sheets.
	if _, err := o.ProcessWorkbook(context.Background(), wb, UploadOptions{Bank: BankIBK}); err == nil {
		t.Error("want error when no sheet classifies and nothing is pinned")
	}
}

func TestProcessWorkbookUnknownBankRejected(t *testing.T) {
	_, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	wb := &fakeWorkbook{order: []string{"Summary"}}
	if _, err := o.ProcessWorkbook(context.Background(), wb, UploadOptions{}); err == nil {
		t.Fatal("want error for unrecognized bank")
	}
}

func TestProcessWorkbookCancellation(t *testing.T) {
	_, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.ProcessWorkbook(ctx, ibkWorkbook(), UploadOptions{Bank: BankIBK}); err == nil {
		t.Fatal("want context error after cancellation")
	}
}

func TestPreviewWorkbookDoesNotWrite(t *testing.T) {
	state, repos := newFakeRepos()
	o := NewOrchestrator(repos, testTemplateStore(t))

	preview, err := o.PreviewWorkbook(context.Background(), ibkWorkbook(), BankUnknown)
	if err != nil {
		t.Fatal(err)
	}
	if preview.Bank != "IBK" {
		t.Errorf("bank = %q, want IBK", preview.Bank)
	}
	if len(state.borrowers)+len(state.properties)+len(state.audits) != 0 {
		t.Error("preview persisted data")
	}
}
