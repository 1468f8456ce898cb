package config

import "os"

const (
	DefaultTimeZone = "Asia/Seoul"

	// EnvTemplatePath overrides where the column mapping template is read from.
	EnvTemplatePath = "NPLDISK_TEMPLATE_PATH"
	// DevTemplatePath is the repo-relative template used when running from source.
	DevTemplatePath = "Resources/mapping_template.json"

	// DefaultTemplateReloadSchedule re-reads the mapping template hourly so
	// edits land without a restart.
	DefaultTemplateReloadSchedule = "0 * * * *"

	// BatchSize caps rows per bulk insert batch.
	BatchSize = 500

	// MaxUploadBytes caps a single uploaded disk file (50 MB).
	MaxUploadBytes = 50 << 20

	// Audit log defaults, overridable per service in services.yaml.
	DefaultLogDir           = "./logs"
	DefaultLogFileMB        = 20
	DefaultLogRetentionDays = 14
)

// Env reads an environment variable with a fallback.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
