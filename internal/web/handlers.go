package web

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vbonduro/checklister/internal/checklist"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/service"
)

const maxIngestBody = 10 * 1024 * 1024 // 10 MB, enough for a base64 photo

type ingestRequest struct {
	Text     string `json:"text,omitempty"`
	ImageB64 string `json:"image_b64,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	var (
		result *service.IngestResult
		err    error
	)
	switch {
	case req.ImageB64 != "":
		var imageData []byte
		imageData, err = base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64 image data")
			return
		}
		result, err = s.service.IngestImage(r.Context(), imageData, req.MimeType)
	case strings.TrimSpace(req.Text) != "":
		result, err = s.service.IngestText(r.Context(), req.Text)
	default:
		writeError(w, http.StatusBadRequest, "text or image_b64 required")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "nothing to categorize")
		return
	case errors.Is(err, service.ErrOCRUnavailable):
		writeError(w, http.StatusServiceUnavailable, "image ingestion not configured")
		return
	default:
		s.logger.Error("ingest failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to process list")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"groups": s.service.GroupedView()})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Progress())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.service.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.ToggleCheck(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, checklist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.logger.Error("toggle failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle item")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type amountResponse struct {
	Completed bool                 `json:"completed"`
	Progress  domain.Progress      `json:"progress"`
	Item      domain.ChecklistItem `json:"item"`
}

func (s *Server) handleConfirmAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	id := r.PathValue("id")
	completed, err := s.service.ConfirmAmount(id, req.Amount)
	switch {
	case err == nil:
	case errors.Is(err, checklist.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "amount must be a positive number")
		return
	case errors.Is(err, checklist.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	default:
		s.logger.Error("confirm amount failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to confirm amount")
		return
	}

	resp := amountResponse{Completed: completed, Progress: s.service.Progress()}
	for _, group := range s.service.GroupedView() {
		for _, item := range group.Items {
			if item.ID == id {
				resp.Item = item
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type moveRequest struct {
	IDs      []string `json:"ids"`
	Category string   `json:"category"`
}

func (s *Server) handleMoveItems(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids required")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "category required")
		return
	}

	moved := s.service.MoveItems(req.IDs, strings.TrimSpace(req.Category))
	writeJSON(w, http.StatusOK, map[string]any{
		"moved":  moved,
		"groups": s.service.GroupedView(),
	})
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleDeleteItems(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids required")
		return
	}

	deleted := s.service.DeleteItems(req.IDs)
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": deleted,
		"groups":  s.service.GroupedView(),
	})
}

// decodeJSON reads a JSON request body into v, writing a 400 response on
// failure. The caller stops handling the request when an error is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
