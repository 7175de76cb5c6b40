package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Mraprguild8133/telegramwasabi/internal/config"
	"github.com/Mraprguild8133/telegramwasabi/internal/models"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
	"github.com/Mraprguild8133/telegramwasabi/internal/response"
)

// linkSigner mints short-lived download URLs for stored objects.
type linkSigner interface {
	PresignDownload(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
}

type FileAPI struct {
	registry *registry.Registry
	signer   linkSigner
	opts     *config.TransferOptions
}

func NewFileAPI(reg *registry.Registry, signer linkSigner, opts *config.TransferOptions) *FileAPI {
	return &FileAPI{
		registry: reg,
		signer:   signer,
		opts:     opts,
	}
}

// Register wires the read-only surface onto mux. protect guards the file
// listing only; streaming links are handed to media players that cannot
// attach headers, and /health stays open for probes.
func (h *FileAPI) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	mux.HandleFunc("/", h.HandleIndex)
	mux.Handle("/api/files", protect(http.HandlerFunc(h.HandleFiles)))
	mux.HandleFunc("/stream/", h.HandleStream)
	mux.HandleFunc("/health", h.HandleHealth)
}

func (h *FileAPI) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		response.JSON("not found").WriteError(w, http.StatusNotFound)
		return
	}
	response.Plain("🚀 High-Speed File Sharing Bot is running!").Write(w)
}

func (h *FileAPI) HandleFiles(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	if r.Method != http.MethodGet {
		response.JSON("method not allowed").WriteError(w, http.StatusMethodNotAllowed)
		return
	}

	records := h.registry.ListRecent(h.opts.RecentFilesLimit)
	files := make([]models.FileInfo, 0, len(records))
	for _, rec := range records {
		files = append(files, models.NewFileInfo(rec))
	}

	response.WriteObject(w, models.FileListResponse{
		Status: "success",
		Total:  len(files),
		Files:  files,
	})
}

func (h *FileAPI) HandleStream(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	fileID := strings.TrimPrefix(r.URL.Path, "/stream/")
	if fileID == "" || strings.Contains(fileID, "/") {
		response.JSON("invalid file id").WriteError(w, http.StatusBadRequest)
		return
	}

	rec, err := h.registry.Get(fileID)
	if errors.Is(err, registry.ErrNotFound) {
		response.JSON("file not found").WriteError(w, http.StatusNotFound)
		return
	}
	if err != nil {
		response.JSON(err.Error()).WriteError(w, http.StatusInternalServerError)
		return
	}

	url, err := h.signer.PresignDownload(r.Context(), rec.ObjectKey, h.opts.StreamLinkTTL())
	if err != nil {
		log.Printf("Failed to presign stream link for %s 🚨: %v", fileID, err)
		response.JSON("failed to generate streaming link").WriteError(w, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *FileAPI) HandleHealth(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	response.WriteObject(w, models.HealthResponse{
		Status:     "healthy",
		FilesCount: h.registry.Len(),
		ServerTime: time.Now().UTC().Format(time.RFC3339),
	})
}

func allowCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", fmt.Sprintf("%s, %s", http.MethodGet, http.MethodOptions))
}
