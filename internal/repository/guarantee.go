package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type guaranteeStore struct {
	pool *pgxpool.Pool
}

func (s *guaranteeStore) InsertBatch(ctx context.Context, rows []models.Guarantee) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO public.guarantees
		(id, borrower_id, borrower_number, account_serial,
		 guarantee_institution, guarantee_type, guarantee_number,
		 guarantee_ratio, guarantee_balance, guarantee_amount,
		 related_loan_account, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now())`
	for _, g := range rows {
		batch.Queue(query, g.ID, g.BorrowerID, g.BorrowerNumber, g.AccountSerial,
			g.GuaranteeInstitution, g.GuaranteeType, g.GuaranteeNumber,
			g.GuaranteeRatio, g.GuaranteeBalance, g.GuaranteeAmount,
			g.RelatedLoanAccount)
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
		return inserted, fmt.Errorf("guarantee batch: %s", strings.Join(errs, "; "))
	}
	return inserted, nil
}
