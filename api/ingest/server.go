package ingest

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	pipeline "npldisk/internal/ingest"
	"npldisk/internal/repository"
)

// StartIngestServer wires the upload pipeline behind its HTTP surface and
// blocks serving it.
func StartIngestServer(cfg map[string]interface{}, pool *pgxpool.Pool) {
	templates := pipeline.DefaultTemplateStore()
	if templatePath, _ := cfg["template_path"].(string); templatePath != "" {
		templates = pipeline.NewTemplateStore(templatePath)
	}
	orch := pipeline.NewOrchestrator(repository.New(pool), templates)

	router := mux.NewRouter()
	router.HandleFunc("/ingest/upload", UploadDiskHandler(orch)).Methods("POST")
	router.HandleFunc("/ingest/preview", PreviewDiskHandler(orch)).Methods("POST")
	router.HandleFunc("/ingest/template/reload", ReloadTemplateHandler(templates)).Methods("POST")
	router.HandleFunc("/ingest/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	addr, _ := cfg["addr"].(string)
	if addr == "" {
		addr = ":6201"
	}
	log.Println("Ingest Service started on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Ingest Service failed: %v", err)
	}
}
