package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type loanStore struct {
	pool *pgxpool.Pool
}

func (s *loanStore) Upsert(ctx context.Context, l *models.Loan) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO public.loans
			(id, borrower_id, borrower_number, account_serial, loan_type,
			 account_number, normal_interest_rate, overdue_interest_rate,
			 initial_loan_date, maturity_date, last_interest_date, currency,
			 initial_loan_amount, loan_principal_balance, advance_payment,
			 unpaid_principal, accrued_interest, total_claim_amount,
			 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,now(),now())
		ON CONFLICT (account_serial) DO UPDATE SET
			borrower_id = EXCLUDED.borrower_id,
			borrower_number = EXCLUDED.borrower_number,
			loan_type = EXCLUDED.loan_type,
			account_number = EXCLUDED.account_number,
			normal_interest_rate = EXCLUDED.normal_interest_rate,
			overdue_interest_rate = EXCLUDED.overdue_interest_rate,
			initial_loan_date = EXCLUDED.initial_loan_date,
			maturity_date = EXCLUDED.maturity_date,
			last_interest_date = EXCLUDED.last_interest_date,
			currency = EXCLUDED.currency,
			initial_loan_amount = EXCLUDED.initial_loan_amount,
			loan_principal_balance = EXCLUDED.loan_principal_balance,
			advance_payment = EXCLUDED.advance_payment,
			unpaid_principal = EXCLUDED.unpaid_principal,
			accrued_interest = EXCLUDED.accrued_interest,
			total_claim_amount = EXCLUDED.total_claim_amount,
			updated_at = now()
		RETURNING id, (xmax = 0)`,
		l.ID, l.BorrowerID, l.BorrowerNumber, l.AccountSerial, l.LoanType,
		l.AccountNumber, l.NormalInterestRate, l.OverdueInterestRate,
		l.InitialLoanDate, l.MaturityDate, l.LastInterestDate, l.Currency,
		l.InitialLoanAmount, l.LoanPrincipalBalance, l.AdvancePayment,
		l.UnpaidPrincipal, l.AccruedInterest, l.TotalClaimAmount,
	).Scan(&l.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert loan %s: %w", l.AccountSerial, err)
	}
	return created, nil
}
