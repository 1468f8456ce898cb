package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type rightAnalysisStore struct {
	pool *pgxpool.Pool
}

func (s *rightAnalysisStore) UpsertByProperty(ctx context.Context, ra *models.RightAnalysis) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO public.right_analyses
			(id, property_id, small_deposit_dd, lease_deposit_dd, wage_claim_dd,
			 current_tax_dd, senior_tax_dd, etc_dd, senior_total_dd, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now())
		ON CONFLICT (property_id) DO UPDATE SET
			small_deposit_dd = EXCLUDED.small_deposit_dd,
			lease_deposit_dd = EXCLUDED.lease_deposit_dd,
			wage_claim_dd = EXCLUDED.wage_claim_dd,
			current_tax_dd = EXCLUDED.current_tax_dd,
			senior_tax_dd = EXCLUDED.senior_tax_dd,
			etc_dd = EXCLUDED.etc_dd,
			senior_total_dd = EXCLUDED.senior_total_dd,
			updated_at = now()`,
		ra.ID, ra.PropertyID, ra.SmallDepositDd, ra.LeaseDepositDd,
		ra.WageClaimDd, ra.CurrentTaxDd, ra.SeniorTaxDd, ra.EtcDd,
		ra.SeniorTotalDd,
	)
	if err != nil {
		return fmt.Errorf("upsert right analysis for property %s: %w", ra.PropertyID, err)
	}
	return nil
}
