package viewer

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed web/index.html
var indexHTML []byte

// maxUploadBytes is a soft limit on uploaded documents; large files still
// load but interactive performance degrades well before this point.
const maxUploadBytes = 50 << 20

// Handler exposes the viewer HTTP endpoints using go-chi.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler returns a Handler that uses the given Service and Logger.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts all viewer routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/view", h.GetView)
	r.Post("/document", h.UploadDocument)
	r.Put("/settings", h.UpdateSettings)
	r.Route("/player", func(r chi.Router) {
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/stop", h.Stop)
		r.Post("/restart", h.Restart)
	})
	r.Post("/analysis", h.TriggerAnalysis)
	r.Get("/analysis", h.GetAnalysis)
}

// Index serves the embedded viewer page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

// UploadDocument handles POST /document. Body: multipart form with a "file"
// field holding the animation JSON.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.log.Debug("invalid multipart body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("reading upload failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	meta, err := h.svc.LoadDocument(header.Filename, raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedDocument):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed animation document"})
		case errors.Is(err, ErrEngineUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no viewport connected"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

// GetView handles GET /view: the full presentation snapshot.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.View())
}

// UpdateSettings handles PUT /settings with a partial settings body,
// e.g. { "speed": 1.5 } or { "renderer": "canvas", "loop": false }.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var u SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		h.log.Debug("invalid settings body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateSettings(u); err != nil {
		switch {
		case errors.Is(err, ErrInvalidSetting):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrEngineUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no viewport connected"})
		default:
			h.log.Error("settings update failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Pause handles POST /player/pause.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.svc.Pause()
	w.WriteHeader(http.StatusNoContent)
}

// Resume handles POST /player/resume.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.svc.Resume()
	w.WriteHeader(http.StatusNoContent)
}

// Stop handles POST /player/stop.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	h.svc.Stop()
	w.WriteHeader(http.StatusNoContent)
}

// Restart handles POST /player/restart. 409 when no document is loaded.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restart(); err != nil {
		w.WriteHeader(http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TriggerAnalysis handles POST /analysis. Accepted is returned both for a
// fresh trigger and for a no-op while a request is already pending.
func (h *Handler) TriggerAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RequestAnalysis(); err != nil {
		w.WriteHeader(http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetAnalysis handles GET /analysis.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Analysis())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
