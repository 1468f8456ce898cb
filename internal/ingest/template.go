package ingest

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"npldisk/internal/config"
)

// MappingTemplate is the external bank mapping document. Immutable once
// loaded; a reload swaps in a fresh snapshot.
type MappingTemplate struct {
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Banks       map[string]BankConfig `json:"banks"`
}

// BankConfig maps canonical sheet-type names to this bank's sheet layout.
type BankConfig struct {
	Sheets map[string]SheetConfig `json:"sheets"`
}

// SheetConfig describes one bank sheet: its source name and the canonical
// column → source column mapping. A null source column means the bank's
// format omits that field.
type SheetConfig struct {
	SheetName string             `json:"sheet_name"`
	Notes     string             `json:"notes"`
	Columns   map[string]*string `json:"columns"`
}

// TemplateStore loads and caches the mapping template. The mutex guards
// loading only; callers read the returned snapshot without locks.
type TemplateStore struct {
	mu       sync.Mutex
	template *MappingTemplate
	path     string
}

// NewTemplateStore builds a store. An empty path means "use the well-known
// locations" (Resources/mapping_template.json next to the executable, then
// the development path).
func NewTemplateStore(path string) *TemplateStore {
	return &TemplateStore{path: path}
}

// Get returns the cached template, loading it on first use. Load failures
// fall back to an empty template and are logged, never returned.
func (s *TemplateStore) Get() *MappingTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		s.template = s.load()
	}
	return s.template
}

// Reload discards the cached snapshot and loads a fresh one.
func (s *TemplateStore) Reload() *MappingTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = s.load()
	return s.template
}

func (s *TemplateStore) load() *MappingTemplate {
	for _, path := range s.candidatePaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var tpl MappingTemplate
		if err := json.Unmarshal(data, &tpl); err != nil {
			log.Printf("[template] %s: parse failed: %v", path, err)
			continue
		}
		log.Printf("[template] loaded %s (%d banks)", path, len(tpl.Banks))
		return &tpl
	}
	log.Printf("[template] no mapping template found, using empty template")
	return emptyTemplate()
}

func (s *TemplateStore) candidatePaths() []string {
	if s.path != "" {
		return []string{s.path}
	}
	var paths []string
	if env := os.Getenv(config.EnvTemplatePath); env != "" {
		paths = append(paths, env)
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "Resources", "mapping_template.json"))
	}
	paths = append(paths, config.DevTemplatePath)
	return paths
}

func emptyTemplate() *MappingTemplate {
	return &MappingTemplate{
		Version:     "1.0",
		Description: "default empty template",
		Banks:       map[string]BankConfig{},
	}
}

// defaultStore backs every component that does not carry its own template
// path, so a scheduled reload is seen by all of them.
var defaultStore = NewTemplateStore("")

// DefaultTemplateStore returns the process-wide template store.
func DefaultTemplateStore() *TemplateStore {
	return defaultStore
}

// BankConfigFor returns the template section for a bank, or false when the
// template does not describe it.
func (t *MappingTemplate) BankConfigFor(bank BankType) (BankConfig, bool) {
	cfg, ok := t.Banks[bank.String()]
	return cfg, ok
}

// SheetConfigFor returns a bank's layout for one canonical sheet type.
func (t *MappingTemplate) SheetConfigFor(bank BankType, sheetType SheetType) (SheetConfig, bool) {
	cfg, ok := t.BankConfigFor(bank)
	if !ok {
		return SheetConfig{}, false
	}
	sc, ok := cfg.Sheets[sheetType.CanonicalName()]
	return sc, ok
}

// ReverseColumns builds normalized source column → canonical column id for
// one bank sheet. When two canonical ids bind the same source spelling, the
// first in canonical-id order wins, keeping the claim stable across runs.
func (sc SheetConfig) ReverseColumns() map[string]string {
	canonicals := make([]string, 0, len(sc.Columns))
	for canonical := range sc.Columns {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	out := make(map[string]string, len(sc.Columns))
	for _, canonical := range canonicals {
		source := sc.Columns[canonical]
		if source == nil || *source == "" {
			continue
		}
		key := NormalizeName(*source)
		if _, taken := out[key]; !taken {
			out[key] = canonical
		}
	}
	return out
}
