package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"npldisk/internal/logger"
	"npldisk/internal/models"
	"npldisk/internal/reader"
	"npldisk/internal/repository"
)

// ProgressFunc reports pipeline progress. label names the current stage or
// sheet in user-facing terms.
type ProgressFunc func(processed, total int, label string)

// UploadOptions tune one ProcessFile run.
type UploadOptions struct {
	// Bank skips auto-detection when set to a concrete bank.
	Bank BankType
	// SheetTypes pins a sheet name to a canonical type, bypassing the
	// classifier for that sheet. Reviewed mappings from the preview screen
	// land here.
	SheetTypes map[string]SheetType
	// UploadID groups this run's audit records. Generated when zero.
	UploadID uuid.UUID
	// FileName is the original upload name recorded in the audit trail.
	FileName string
	// ProgramID and UploadedBy are opaque caller identifiers carried into
	// the audit trail.
	ProgramID  string
	UploadedBy string
	Progress   ProgressFunc
}

// SheetResult summarizes one processed sheet.
type SheetResult struct {
	SheetName string `json:"sheet_name"`
	SheetType string `json:"sheet_type"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
	// Errors holds one message per failed row, capped at maxRowErrors.
	Errors []string `json:"errors,omitempty"`
}

// ProcessResult is the outcome of one disk upload.
type ProcessResult struct {
	UploadID   uuid.UUID     `json:"upload_id"`
	Bank       string        `json:"bank"`
	Confidence float64       `json:"confidence"`
	Sheets     []SheetResult `json:"sheets"`
}

// maxRowErrors caps messages kept per sheet so a systematically broken
// disk does not balloon the result payload.
const maxRowErrors = 50

// Orchestrator drives a disk file through detection, classification,
// mapping, transformation and persistence. Row failures are isolated: a bad
// row is counted and skipped, never aborting its sheet, and a bad sheet
// never aborts the file.
type Orchestrator struct {
	repos     *repository.Repositories
	templates *TemplateStore
}

func NewOrchestrator(repos *repository.Repositories, templates *TemplateStore) *Orchestrator {
	return &Orchestrator{repos: repos, templates: templates}
}

// entityCache resolves borrower numbers to ids within one run, falling back
// to the repository for borrowers created by earlier uploads. An unresolved
// borrower is not an error; dependent rows keep a nil foreign key.
type entityCache struct {
	repos       *repository.Repositories
	borrowerIDs map[string]uuid.UUID
	propertyIDs map[string]uuid.UUID
}

func newEntityCache(repos *repository.Repositories) *entityCache {
	return &entityCache{
		repos:       repos,
		borrowerIDs: map[string]uuid.UUID{},
		propertyIDs: map[string]uuid.UUID{},
	}
}

func (c *entityCache) putBorrower(number string, id uuid.UUID) {
	c.borrowerIDs[number] = id
}

func (c *entityCache) borrowerID(ctx context.Context, number string) *uuid.UUID {
	if number == "" {
		return nil
	}
	if id, ok := c.borrowerIDs[number]; ok {
		return &id
	}
	id, found, err := c.repos.Borrowers.IDByNumber(ctx, number)
	if err != nil || !found {
		return nil
	}
	c.borrowerIDs[number] = id
	return &id
}

func (c *entityCache) putProperty(borrowerNumber, collateralNumber string, id uuid.UUID) {
	c.propertyIDs[borrowerNumber+"|"+collateralNumber] = id
}

func (c *entityCache) propertyID(borrowerNumber, collateralNumber string) *uuid.UUID {
	if id, ok := c.propertyIDs[borrowerNumber+"|"+collateralNumber]; ok {
		return &id
	}
	return nil
}

// ProcessFile ingests one disk file end to end.
func (o *Orchestrator) ProcessFile(ctx context.Context, path string, opts UploadOptions) (*ProcessResult, error) {
	wb, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return o.ProcessWorkbook(ctx, wb, opts)
}

// ProcessWorkbook runs the pipeline over an already-open workbook.
func (o *Orchestrator) ProcessWorkbook(ctx context.Context, wb reader.Workbook, opts UploadOptions) (*ProcessResult, error) {
	if opts.UploadID == uuid.Nil {
		opts.UploadID = uuid.New()
	}
	tpl := o.templates.Get()

	bank, confidence := opts.Bank, 1.0
	if bank == BankUnknown {
		bank, confidence = DetectBank(wb.SheetNames())
	}
	if bank == BankUnknown {
		return nil, fmt.Errorf("bank format not recognized from sheet names %v", wb.SheetNames())
	}
	logger.LogAudit(fmt.Sprintf("upload %s: file=%s bank=%s confidence=%.2f",
		opts.UploadID, opts.FileName, bank, confidence))

	metas, err := wb.Sheets()
	if err != nil {
		return nil, err
	}

	// First classified sheet of each type wins; extras are ignored. A
	// caller-pinned type takes precedence over the classifier.
	classified := map[SheetType]reader.SheetMeta{}
	for _, meta := range metas {
		st, pinned := opts.SheetTypes[meta.Name]
		if !pinned {
			st = ClassifySheet(tpl, bank, meta.Name)
		}
		if st == SheetUnknown {
			continue
		}
		if _, taken := classified[st]; !taken {
			classified[st] = meta
		}
	}
	if len(classified) == 0 {
		return nil, fmt.Errorf("no recognizable sheets in %s", opts.FileName)
	}

	result := &ProcessResult{
		UploadID:   opts.UploadID,
		Bank:       bank.String(),
		Confidence: confidence,
	}
	cache := newEntityCache(o.repos)

	for _, sheetType := range CanonicalSheetTypes {
		meta, ok := classified[sheetType]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sr := o.processSheet(ctx, wb, tpl, bank, meta, sheetType, cache, opts.Progress)
		result.Sheets = append(result.Sheets, sr)
		o.recordAudit(ctx, opts, bank, confidence, tpl, meta, sheetType, sr)
	}
	return result, nil
}

func (o *Orchestrator) processSheet(ctx context.Context, wb reader.Workbook, tpl *MappingTemplate, bank BankType, meta reader.SheetMeta, sheetType SheetType, cache *entityCache, progress ProgressFunc) SheetResult {
	sr := SheetResult{SheetName: meta.Name, SheetType: sheetType.String()}

	_, rows, err := wb.ReadSheet(meta.Name)
	if err != nil {
		sr.Failed = meta.RowCount
		sr.Errors = append(sr.Errors, fmt.Sprintf("read sheet: %v", err))
		return sr
	}

	info := ResolveColumns(tpl, bank, meta, sheetType)
	if missing := info.MissingRequired(); len(missing) > 0 {
		sr.Failed = len(rows)
		sr.Errors = append(sr.Errors, fmt.Sprintf("required columns unmapped: %v", missing))
		return sr
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			sr.Errors = appendRowError(sr.Errors, i, err)
			sr.Failed += len(rows) - i
			return sr
		}

		TransformRow(sheetType, bank, row)
		values := info.RowValues(row)

		created, updated, err := o.writeRow(ctx, sheetType, values, cache, i)
		if err != nil {
			sr.Failed++
			sr.Errors = appendRowError(sr.Errors, i, err)
		} else {
			sr.Created += created
			sr.Updated += updated
		}

		if progress != nil {
			progress(i+1, len(rows), meta.Name)
		}
	}
	return sr
}

// writeRow persists one projected row per the sheet type's write policy:
// borrowers and loans upsert on their natural keys, right analyses upsert
// per property, everything else appends.
func (o *Orchestrator) writeRow(ctx context.Context, sheetType SheetType, values map[string]reader.CellValue, cache *entityCache, rowIndex int) (created, updated int, err error) {
	switch sheetType {
	case SheetBorrowerGeneral:
		b, err := ProjectBorrower(values)
		if err != nil {
			return 0, 0, err
		}
		isNew, err := o.repos.Borrowers.Upsert(ctx, b)
		if err != nil {
			return 0, 0, err
		}
		cache.putBorrower(b.BorrowerNumber, b.ID)
		if isNew {
			return 1, 0, nil
		}
		return 0, 1, nil

	case SheetBorrowerRestructuring:
		r, err := ProjectRestructuring(values, cache.borrowerID(ctx, text(values, "borrower_number")))
		if err != nil {
			return 0, 0, err
		}
		n, err := o.repos.Restructurings.InsertBatch(ctx, []models.BorrowerRestructuring{*r})
		return n, 0, err

	case SheetLoan:
		l, err := ProjectLoan(values, cache.borrowerID(ctx, text(values, "borrower_number")))
		if err != nil {
			return 0, 0, err
		}
		isNew, err := o.repos.Loans.Upsert(ctx, l)
		if err != nil {
			return 0, 0, err
		}
		if isNew {
			return 1, 0, nil
		}
		return 0, 1, nil

	case SheetProperty:
		p, err := ProjectProperty(values, cache.borrowerID(ctx, text(values, "borrower_number")), rowIndex)
		if err != nil {
			return 0, 0, err
		}
		if err := o.repos.Properties.Insert(ctx, p); err != nil {
			return 0, 0, err
		}
		if p.CollateralNumber != nil {
			cache.putProperty(p.BorrowerNumber, *p.CollateralNumber, p.ID)
		}
		if ra := ProjectRightAnalysis(values, p.ID); ra != nil {
			if err := o.repos.RightAnalyses.UpsertByProperty(ctx, ra); err != nil {
				log.Printf("[ingest] right analysis for property %s: %v", p.PropertyNumber, err)
			}
		}
		return 1, 0, nil

	case SheetRegistryDetail:
		var propertyID *uuid.UUID
		if collateral := text(values, "collateral_number"); collateral != "" {
			propertyID = cache.propertyID(text(values, "borrower_number"), collateral)
		}
		r, err := ProjectRegistryDetail(values, propertyID)
		if err != nil {
			return 0, 0, err
		}
		n, err := o.repos.Properties.InsertRegistryBatch(ctx, []models.RegistryDetail{*r})
		return n, 0, err

	case SheetGuarantee:
		g, err := ProjectGuarantee(values, cache.borrowerID(ctx, text(values, "borrower_number")))
		if err != nil {
			return 0, 0, err
		}
		n, err := o.repos.Guarantees.InsertBatch(ctx, []models.Guarantee{*g})
		return n, 0, err
	}
	return 0, 0, fmt.Errorf("unsupported sheet type %v", sheetType)
}

func (o *Orchestrator) recordAudit(ctx context.Context, opts UploadOptions, bank BankType, confidence float64, tpl *MappingTemplate, meta reader.SheetMeta, sheetType SheetType, sr SheetResult) {
	info := ResolveColumns(tpl, bank, meta, sheetType)
	payload, err := json.Marshal(info.Columns)
	if err != nil {
		payload = []byte("[]")
	}

	audit := &models.SheetMappingAudit{
		ID:             uuid.New(),
		UploadID:       opts.UploadID,
		ProgramID:      opts.ProgramID,
		UploadedBy:     opts.UploadedBy,
		FileName:       opts.FileName,
		BankType:       bank.String(),
		Confidence:     confidence,
		SheetName:      meta.Name,
		SheetType:      sheetType.String(),
		ColumnMappings: payload,
		RowsProcessed:  sr.Created + sr.Updated,
		RowsFailed:     sr.Failed,
	}
	if err := o.repos.Audits.Insert(ctx, audit); err != nil {
		log.Printf("[ingest] audit record for %s/%s: %v", opts.FileName, meta.Name, err)
	}
}

func appendRowError(errs []string, rowIndex int, err error) []string {
	if len(errs) >= maxRowErrors {
		return errs
	}
	return append(errs, fmt.Sprintf("row %d: %v", rowIndex+1, err))
}

// PreviewSheet describes how one sheet would be mapped, without writing.
type PreviewSheet struct {
	SheetName string              `json:"sheet_name"`
	SheetType string              `json:"sheet_type"`
	RowCount  int                 `json:"row_count"`
	Columns   []ColumnMappingInfo `json:"columns"`
	Missing   []string            `json:"missing_required,omitempty"`
}

// Preview is the dry-run counterpart of ProcessFile for the mapping review
// screen.
type Preview struct {
	Bank       string         `json:"bank"`
	Confidence float64        `json:"confidence"`
	Sheets     []PreviewSheet `json:"sheets"`
}

// PreviewFile detects, classifies and resolves a disk without persisting
// anything.
func (o *Orchestrator) PreviewFile(ctx context.Context, path string, bankOverride BankType) (*Preview, error) {
	wb, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return o.PreviewWorkbook(ctx, wb, bankOverride)
}

// PreviewWorkbook is PreviewFile over an already-open workbook.
func (o *Orchestrator) PreviewWorkbook(ctx context.Context, wb reader.Workbook, bankOverride BankType) (*Preview, error) {
	tpl := o.templates.Get()
	bank, confidence := bankOverride, 1.0
	if bank == BankUnknown {
		bank, confidence = DetectBank(wb.SheetNames())
	}

	metas, err := wb.Sheets()
	if err != nil {
		return nil, err
	}

	preview := &Preview{Bank: bank.String(), Confidence: confidence}
	for _, meta := range metas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheetType := ClassifySheet(tpl, bank, meta.Name)
		ps := PreviewSheet{
			SheetName: meta.Name,
			SheetType: sheetType.String(),
			RowCount:  meta.RowCount,
		}
		if sheetType != SheetUnknown {
			info := ResolveColumns(tpl, bank, meta, sheetType)
			ps.Columns = info.Columns
			ps.Missing = info.MissingRequired()
		}
		preview.Sheets = append(preview.Sheets, ps)
	}
	return preview, nil
}
