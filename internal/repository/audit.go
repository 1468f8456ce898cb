package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type auditStore struct {
	pool *pgxpool.Pool
}

func (s *auditStore) Insert(ctx context.Context, a *models.SheetMappingAudit) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO public.sheet_mapping_audits
			(id, upload_id, program_id, uploaded_by, file_name, bank_type,
			 confidence, sheet_name, sheet_type, column_mappings,
			 rows_processed, rows_failed, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())`,
		a.ID, a.UploadID, a.ProgramID, a.UploadedBy, a.FileName, a.BankType,
		a.Confidence, a.SheetName, a.SheetType, a.ColumnMappings,
		a.RowsProcessed, a.RowsFailed,
	)
	if err != nil {
		return fmt.Errorf("insert mapping audit for %s/%s: %w", a.FileName, a.SheetName, err)
	}
	return nil
}
