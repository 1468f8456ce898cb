package ingest

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/serviceiface"
)

type IngestService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewIngestService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &IngestService{config: cfg, pool: pool}
}

func (s *IngestService) Name() string {
	return "ingest"
}

func (s *IngestService) Start() error {
	go StartIngestServer(s.config, s.pool)
	return nil
}

func (s *IngestService) Stop() error {
	return nil
}
