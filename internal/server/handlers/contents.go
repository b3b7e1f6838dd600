package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/weightkeeper/internal/logging"
	"github.com/iudanet/weightkeeper/internal/server/storage"
	"github.com/iudanet/weightkeeper/internal/validation"
	"github.com/iudanet/weightkeeper/pkg/api"
)

// maxContentBody ограничение размера тела PUT запроса
const maxContentBody = 10 << 20

// ContentsHandler обрабатывает запросы к содержимому файлов репозитория
type ContentsHandler struct {
	logger  *slog.Logger
	storage storage.FileStorage
}

// NewContentsHandler создает новый handler для /repos/{owner}/{repo}/contents
func NewContentsHandler(logger *slog.Logger, fileStorage storage.FileStorage) *ContentsHandler {
	return &ContentsHandler{
		logger:  logger,
		storage: fileStorage,
	}
}

// fileKey извлекает owner/repo/path из URL и проверяет владельца токена
func (h *ContentsHandler) fileKey(w http.ResponseWriter, r *http.Request, wantPath bool) (storage.FileKey, bool) {
	// owner и repo сравниваются без учета регистра, поэтому хранятся в нижнем регистре
	key := storage.FileKey{
		Owner: strings.ToLower(chi.URLParam(r, "owner")),
		Repo:  strings.ToLower(chi.URLParam(r, "repo")),
		Path:  strings.Trim(chi.URLParam(r, "*"), "/"),
	}
	if !wantPath {
		key.Path = strings.Trim(r.URL.Query().Get("path"), "/")
	}

	if err := validation.ValidateLocation(key.Owner, key.Repo, key.Path); err != nil {
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return key, false
	}

	username, ok := GetUsername(r.Context())
	if !ok {
		SendError(w, h.logger, "Requires authentication", http.StatusUnauthorized)
		return key, false
	}
	if !strings.EqualFold(username, key.Owner) {
		logging.FromContext(r.Context(), h.logger).Warn("Access to foreign repository denied",
			"username", username,
			"owner", key.Owner,
		)
		SendError(w, h.logger, "Resource not accessible by token", http.StatusForbidden)
		return key, false
	}

	return key, true
}

// GetContents обрабатывает GET /repos/{owner}/{repo}/contents/{path}
func (h *ContentsHandler) GetContents(w http.ResponseWriter, r *http.Request) {
	key, ok := h.fileKey(w, r, true)
	if !ok {
		return
	}
	logger := logging.FromContext(r.Context(), h.logger)

	file, err := h.storage.GetFile(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			SendError(w, h.logger, "Not Found", http.StatusNotFound)
			return
		}
		logger.Error("Failed to get file", "path", key.Path, "error", err)
		SendError(w, h.logger, "Internal server error", http.StatusInternalServerError)
		return
	}

	SendJSON(w, h.logger, toContentFile(file, true), http.StatusOK)
}

// PutContents обрабатывает PUT /repos/{owner}/{repo}/contents/{path}
func (h *ContentsHandler) PutContents(w http.ResponseWriter, r *http.Request) {
	key, ok := h.fileKey(w, r, true)
	if !ok {
		return
	}
	logger := logging.FromContext(r.Context(), h.logger)

	var req api.PutContentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContentBody)).Decode(&req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		SendError(w, h.logger, "Problems parsing JSON", http.StatusBadRequest)
		return
	}

	content, err := api.DecodeContent(req.Content)
	if err != nil {
		SendError(w, h.logger, "content is not valid Base64", http.StatusBadRequest)
		return
	}

	username, _ := GetUsername(r.Context())
	message := req.Message
	if message == "" {
		message = "Update " + key.Path
	}

	result, err := h.storage.PutFile(r.Context(), &storage.PutFileRequest{
		FileKey: key,
		Content: content,
		BaseSHA: req.SHA,
		Message: message,
		Author:  username,
	})
	if err != nil {
		if errors.Is(err, storage.ErrRevisionMismatch) {
			logger.Info("Revision conflict", "path", key.Path, "sha", req.SHA)
			SendError(w, h.logger, conflictMessage(key.Path, req.SHA), http.StatusConflict)
			return
		}
		logger.Error("Failed to put file", "path", key.Path, "error", err)
		SendError(w, h.logger, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	logger.Info("File written",
		"path", key.Path,
		"sha", result.File.SHA,
		"created", result.Created,
		"size", result.File.Size,
	)

	SendJSON(w, h.logger, api.PutContentResponse{
		Content: toContentFile(result.File, false),
		Commit:  toCommit(result.Commit),
	}, status)
}

// ListCommits обрабатывает GET /repos/{owner}/{repo}/commits?path=...&per_page=...
func (h *ContentsHandler) ListCommits(w http.ResponseWriter, r *http.Request) {
	key, ok := h.fileKey(w, r, false)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			SendError(w, h.logger, "per_page must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	commits, err := h.storage.ListCommits(r.Context(), key, limit)
	if err != nil {
		logging.FromContext(r.Context(), h.logger).Error("Failed to list commits", "path", key.Path, "error", err)
		SendError(w, h.logger, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Commit, 0, len(commits))
	for _, c := range commits {
		resp = append(resp, toCommit(c))
	}
	SendJSON(w, h.logger, resp, http.StatusOK)
}

func conflictMessage(filePath, sha string) string {
	if sha == "" {
		return fmt.Sprintf("%s already exists, \"sha\" wasn't supplied", filePath)
	}
	return fmt.Sprintf("%s does not match %s", filePath, sha)
}

func toContentFile(file *storage.File, withContent bool) api.ContentFile {
	cf := api.ContentFile{
		Type:     "file",
		Name:     path.Base(file.Path),
		Path:     file.Path,
		SHA:      file.SHA,
		Size:     file.Size,
		Encoding: api.EncodingBase64,
	}
	if withContent {
		cf.Content = api.EncodeContentWrapped(file.Content)
	}
	return cf
}

func toCommit(c *storage.Commit) api.Commit {
	if c == nil {
		return api.Commit{}
	}
	return api.Commit{
		SHA:     c.ID,
		Message: c.Message,
		Author:  c.Author,
		Date:    c.CreatedAt.UTC().Truncate(time.Second),
	}
}
