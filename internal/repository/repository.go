package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

// BorrowerRepo persists the borrower roster. Borrowers upsert on their
// borrower number so re-uploading a disk refreshes rather than duplicates.
type BorrowerRepo interface {
	Upsert(ctx context.Context, b *models.Borrower) (created bool, err error)
	IDByNumber(ctx context.Context, borrowerNumber string) (uuid.UUID, bool, error)
}

// LoanRepo upserts loans on their composite account serial.
type LoanRepo interface {
	Upsert(ctx context.Context, l *models.Loan) (created bool, err error)
}

// RestructuringRepo appends rehabilitation snapshots; history is kept.
type RestructuringRepo interface {
	InsertBatch(ctx context.Context, rows []models.BorrowerRestructuring) (int, error)
}

// PropertyRepo inserts properties and appends registry parcels.
type PropertyRepo interface {
	Insert(ctx context.Context, p *models.Property) error
	InsertRegistryBatch(ctx context.Context, rows []models.RegistryDetail) (int, error)
}

// GuaranteeRepo appends guarantee certificates.
type GuaranteeRepo interface {
	InsertBatch(ctx context.Context, rows []models.Guarantee) (int, error)
}

// RightAnalysisRepo upserts per-property deduction figures.
type RightAnalysisRepo interface {
	UpsertByProperty(ctx context.Context, ra *models.RightAnalysis) error
}

// AuditRepo records how each uploaded sheet was mapped.
type AuditRepo interface {
	Insert(ctx context.Context, a *models.SheetMappingAudit) error
}

// Repositories bundles every store the ingest pipeline touches.
type Repositories struct {
	Borrowers      BorrowerRepo
	Loans          LoanRepo
	Restructurings RestructuringRepo
	Properties     PropertyRepo
	Guarantees     GuaranteeRepo
	RightAnalyses  RightAnalysisRepo
	Audits         AuditRepo
}

// New wires the pgx-backed stores over one shared pool.
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Borrowers:      &borrowerStore{pool: pool},
		Loans:          &loanStore{pool: pool},
		Restructurings: &restructuringStore{pool: pool},
		Properties:     &propertyStore{pool: pool},
		Guarantees:     &guaranteeStore{pool: pool},
		RightAnalyses:  &rightAnalysisStore{pool: pool},
		Audits:         &auditStore{pool: pool},
	}
}
