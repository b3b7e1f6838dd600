package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/weightkeeper/pkg/api"
)

// SendJSON отправляет JSON ответ
func SendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет JSON ответ с ошибкой в формате {"message": "..."}
func SendError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	SendJSON(w, logger, api.ErrorResponse{Message: message}, statusCode)
}
