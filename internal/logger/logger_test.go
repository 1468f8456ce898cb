package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerServiceConfigDefaults(t *testing.T) {
	l := NewLoggerService(map[string]interface{}{})
	if l.folderPath != "./logs" {
		t.Errorf("folder = %q", l.folderPath)
	}
	if l.maxFileBytes != 20*1024*1024 {
		t.Errorf("maxFileBytes = %d", l.maxFileBytes)
	}
	if l.retentionDays != 14 {
		t.Errorf("retentionDays = %d", l.retentionDays)
	}

	// yaml hands ints, JSON round-trips hand float64; both must apply.
	l = NewLoggerService(map[string]interface{}{
		"folder_path":    "/tmp/audit",
		"max_file_mb":    float64(5),
		"retention_days": 7,
	})
	if l.folderPath != "/tmp/audit" || l.maxFileBytes != 5*1024*1024 || l.retentionDays != 7 {
		t.Errorf("configured values not applied: %+v", l)
	}
}

func TestLogAuditWritesAndRotates(t *testing.T) {
	dir := t.TempDir()
	l := NewLoggerService(map[string]interface{}{"folder_path": dir})
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	defer l.Stop()

	l.LogAudit("upload started")

	// Force the size cap so the next write opens a fresh file.
	l.mu.Lock()
	l.maxFileBytes = 1
	l.written = 2
	l.mu.Unlock()
	l.LogAudit("upload finished")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".log" {
			logs = append(logs, e.Name())
		}
	}
	if len(logs) < 1 {
		t.Fatal("no audit files written")
	}

	var all strings.Builder
	for _, name := range logs {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		all.Write(b)
	}
	if !strings.Contains(all.String(), "upload started") ||
		!strings.Contains(all.String(), "upload finished") {
		t.Errorf("audit lines missing: %q", all.String())
	}
}
