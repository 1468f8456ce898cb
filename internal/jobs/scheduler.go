package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"npldisk/internal/config"
	"npldisk/internal/ingest"
	"npldisk/internal/logger"
	"npldisk/internal/serviceiface"
)

// CronService periodically reloads the bank mapping template so operators
// can adjust column bindings without restarting the process.
type CronService struct {
	config    map[string]interface{}
	templates *ingest.TemplateStore
	cron      *cron.Cron
}

func NewCronService(cfg map[string]interface{}) serviceiface.Service {
	return &CronService{
		config:    cfg,
		templates: ingest.DefaultTemplateStore(),
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	schedule := config.DefaultTemplateReloadSchedule
	timezone := config.DefaultTimeZone
	if s.config != nil {
		if v, ok := s.config["template_reload_schedule"].(string); ok && v != "" {
			schedule = v
		}
		if v, ok := s.config["timezone"].(string); ok && v != "" {
			timezone = v
		}
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(schedule, func() {
		tpl := s.templates.Reload()
		logger.LogAudit(fmt.Sprintf("mapping template reloaded: version=%s banks=%d",
			tpl.Version, len(tpl.Banks)))
	}); err != nil {
		return fmt.Errorf("failed to schedule template reload: %w", err)
	}
	s.cron.Start()

	log.Println("Cron service started, template reload scheduled:", schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	return nil
}
