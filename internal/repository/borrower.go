package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type borrowerStore struct {
	pool *pgxpool.Pool
}

func (s *borrowerStore) Upsert(ctx context.Context, b *models.Borrower) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO public.borrowers
			(id, serial_number, pool_type, borrower_category, borrower_number,
			 borrower_name, related_borrower, borrower_type, opb, advance_payment,
			 unpaid_principal, accrued_interest, mortgage_amount,
			 senior_mortgage_amount, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
		ON CONFLICT (borrower_number) DO UPDATE SET
			serial_number = EXCLUDED.serial_number,
			pool_type = EXCLUDED.pool_type,
			borrower_category = EXCLUDED.borrower_category,
			borrower_name = EXCLUDED.borrower_name,
			related_borrower = EXCLUDED.related_borrower,
			borrower_type = EXCLUDED.borrower_type,
			opb = EXCLUDED.opb,
			advance_payment = EXCLUDED.advance_payment,
			unpaid_principal = EXCLUDED.unpaid_principal,
			accrued_interest = EXCLUDED.accrued_interest,
			mortgage_amount = EXCLUDED.mortgage_amount,
			senior_mortgage_amount = EXCLUDED.senior_mortgage_amount,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, (xmax = 0)`,
		b.ID, b.SerialNumber, b.PoolType, b.BorrowerCategory, b.BorrowerNumber,
		b.BorrowerName, b.RelatedBorrower, b.BorrowerType, b.OPB, b.AdvancePayment,
		b.UnpaidPrincipal, b.AccruedInterest, b.MortgageAmount,
		b.SeniorMortgageAmount, b.Notes,
	).Scan(&b.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert borrower %s: %w", b.BorrowerNumber, err)
	}
	return created, nil
}

func (s *borrowerStore) IDByNumber(ctx context.Context, borrowerNumber string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM public.borrowers WHERE borrower_number = $1`,
		borrowerNumber,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup borrower %s: %w", borrowerNumber, err)
	}
	return id, true, nil
}
