package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type restructuringStore struct {
	pool *pgxpool.Pool
}

func (s *restructuringStore) InsertBatch(ctx context.Context, rows []models.BorrowerRestructuring) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO public.borrower_restructurings
		(id, borrower_id, borrower_number, borrower_name, approval_status,
		 progress_stage, court_name, case_number, filing_date,
		 preservation_date, commencement_date, claim_filing_date,
		 approval_dismissal_date, industry, listing_status, employee_count,
		 establishment_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,now())`
	for _, r := range rows {
		batch.Queue(query, r.ID, r.BorrowerID, r.BorrowerNumber, r.BorrowerName,
			r.ApprovalStatus, r.ProgressStage, r.CourtName, r.CaseNumber,
			r.FilingDate, r.PreservationDate, r.CommencementDate,
			r.ClaimFilingDate, r.ApprovalDismissalDate, r.Industry,
			r.ListingStatus, r.EmployeeCount, r.EstablishmentDate)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	var errs []string
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		inserted++
	}
	if len(errs) > 0 {
		return inserted, fmt.Errorf("restructuring batch: %s", strings.Join(errs, "; "))
	}
	return inserted, nil
}
