package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"npldisk/internal/config"
	pipeline "npldisk/internal/ingest"
)

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// saveUpload copies the multipart file to a temp path keeping its extension,
// since the reader dispatches on it.
func saveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".xlsm" && ext != ".xls" {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	dst, err := os.CreateTemp("", "npldisk-*"+ext)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// parseSheetTypeOverrides decodes the optional "sheet_types" form field: a
// JSON object of sheet name to type label, pinned ahead of classification.
func parseSheetTypeOverrides(raw string) (map[string]pipeline.SheetType, error) {
	if raw == "" {
		return nil, nil
	}
	var labels map[string]string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, fmt.Errorf("sheet_types is not a JSON object: %v", err)
	}
	overrides := make(map[string]pipeline.SheetType, len(labels))
	for sheet, label := range labels {
		st := pipeline.ParseSheetType(label)
		if st == pipeline.SheetUnknown {
			return nil, fmt.Errorf("unknown sheet type %q for sheet %q", label, sheet)
		}
		overrides[sheet] = st
	}
	return overrides, nil
}

// UploadDiskHandler handles POST /ingest/upload. Form fields: "file" (the
// disk workbook), optional "bank" to skip auto-detection, optional
// "sheet_types" to pin sheet classifications.
func UploadDiskHandler(orch *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			httpError(w, http.StatusBadRequest, "multipart parse error: "+err.Error())
			return
		}
		file, fh, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "missing file field")
			return
		}
		file.Close()

		sheetTypes, err := parseSheetTypeOverrides(r.FormValue("sheet_types"))
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		path, err := saveUpload(fh)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer os.Remove(path)

		result, err := orch.ProcessFile(ctx, path, pipeline.UploadOptions{
			Bank:       pipeline.ParseBankType(r.FormValue("bank")),
			SheetTypes: sheetTypes,
			FileName:   fh.Filename,
			ProgramID:  r.FormValue("program_id"),
			UploadedBy: r.FormValue("user_id"),
		})
		if err != nil {
			if ctx.Err() != nil {
				httpError(w, http.StatusRequestTimeout, "upload canceled")
				return
			}
			httpError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// PreviewDiskHandler handles POST /ingest/preview: the dry run behind the
// mapping review screen.
func PreviewDiskHandler(orch *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			httpError(w, http.StatusBadRequest, "multipart parse error: "+err.Error())
			return
		}
		file, fh, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "missing file field")
			return
		}
		file.Close()

		path, err := saveUpload(fh)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer os.Remove(path)

		preview, err := orch.PreviewFile(ctx, path, pipeline.ParseBankType(r.FormValue("bank")))
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, preview)
	}
}

// ReloadTemplateHandler handles POST /ingest/template/reload.
func ReloadTemplateHandler(templates *pipeline.TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl := templates.Reload()
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"version": tpl.Version,
			"banks":   len(tpl.Banks),
		})
	}
}
