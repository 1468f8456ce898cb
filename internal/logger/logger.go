package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"npldisk/internal/config"
)

// LoggerService keeps the ingestion audit trail: one timestamped file under
// the log folder, written only through LogAudit. Console logging via the
// std logger is left untouched. Rotation happens inline on the write path
// once the file crosses its size cap; a daily sweep zips files past the
// retention window and removes the originals.
type LoggerService struct {
	mu            sync.Mutex
	audit         *log.Logger
	file          *os.File
	written       int64
	folderPath    string
	maxFileBytes  int64
	retentionDays int
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

func NewLoggerService(cfg map[string]interface{}) *LoggerService {
	folder := stringOpt(cfg, "folder_path", config.DefaultLogDir)
	maxMB := intOpt(cfg, "max_file_mb", config.DefaultLogFileMB)
	retention := intOpt(cfg, "retention_days", config.DefaultLogRetentionDays)

	return &LoggerService{
		folderPath:    folder,
		maxFileBytes:  int64(maxMB) * 1024 * 1024,
		retentionDays: retention,
		stopCh:        make(chan struct{}),
	}
}

// services.yaml numbers arrive as int from the yaml decoder and float64
// when the sequence passes through JSON, so both are accepted.
func intOpt(cfg map[string]interface{}, key string, fallback int) int {
	switch v := cfg[key].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return fallback
}

func stringOpt(cfg map[string]interface{}, key, fallback string) string {
	if s, ok := cfg[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func (l *LoggerService) Name() string {
	return "Logger"
}

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.folderPath, 0755); err != nil {
		return err
	}
	if err := l.openFileLocked(); err != nil {
		return err
	}
	log.Println("[logger] audit log at", l.file.Name())

	l.wg.Add(1)
	go l.retentionLoop()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.audit = nil
	return err
}

// LogAudit appends one line to the audit file, rotating first when the
// current file is at its size cap.
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.audit == nil {
		log.Printf("[AUDIT] %s", msg)
		return
	}
	if l.maxFileBytes > 0 && l.written >= l.maxFileBytes {
		if err := l.openFileLocked(); err != nil {
			log.Printf("[logger] rotate failed, keeping current file: %v", err)
		}
	}
	l.audit.Print(msg)
	// 32 approximates the timestamp prefix plus newline.
	l.written += int64(len(msg)) + 32
}

// openFileLocked swaps in a fresh timestamped audit file. Caller holds mu.
func (l *LoggerService) openFileLocked() error {
	name := filepath.Join(l.folderPath,
		fmt.Sprintf("audit_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = file
	l.audit = log.New(file, "", log.LstdFlags)
	l.written = 0
	return nil
}

func (l *LoggerService) retentionLoop() {
	defer l.wg.Done()
	l.sweepOldLogs()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.sweepOldLogs()
		}
	}
}

// sweepOldLogs zips audit files older than the retention window into a
// dated archive and deletes the originals. The live file is never older
// than the cutoff, so it is never swept.
func (l *LoggerService) sweepOldLogs() {
	if l.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -l.retentionDays)

	entries, err := os.ReadDir(l.folderPath)
	if err != nil {
		return
	}
	var expired []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		expired = append(expired, e.Name())
	}
	if len(expired) == 0 {
		return
	}

	zipName := filepath.Join(l.folderPath,
		fmt.Sprintf("audit_archive_%s.zip", time.Now().Format("20060102")))
	zipFile, err := os.Create(zipName)
	if err != nil {
		return
	}
	defer zipFile.Close()
	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	for _, name := range expired {
		full := filepath.Join(l.folderPath, name)
		w, err := zw.Create(name)
		if err != nil {
			continue
		}
		src, err := os.Open(full)
		if err != nil {
			continue
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			continue
		}
		src.Close()
		os.Remove(full)
	}
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}

// LogAudit writes to the global audit log. Safe to call before the logger
// service starts; messages then go to the default std log output.
func LogAudit(msg string) {
	if GlobalLogger != nil {
		GlobalLogger.LogAudit(msg)
		return
	}
	log.Printf("[AUDIT] %s", msg)
}
