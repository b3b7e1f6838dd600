package api

import "time"

// EncodingBase64 кодировка содержимого файла при передаче
const EncodingBase64 = "base64"

// ContentFile представляет ответ на GET /repos/{owner}/{repo}/contents/{path}
type ContentFile struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`      // SHA ревизия файла (токен оптимистичной блокировки)
	Encoding string `json:"encoding"` // Encoding всегда "base64"
	Content  string `json:"content"`  // Content содержимое в base64, может содержать переводы строк
	Size     int64  `json:"size"`
}

// PutContentRequest представляет тело PUT /repos/{owner}/{repo}/contents/{path}
type PutContentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`       // Content новое содержимое в base64
	SHA     string `json:"sha,omitempty"` // SHA ожидаемая текущая ревизия; пусто при создании файла
}

// PutContentResponse представляет ответ на успешный PUT
type PutContentResponse struct {
	Content ContentFile `json:"content"`
	Commit  Commit      `json:"commit"`
}

// Commit описывает коммит, созданный записью файла
type Commit struct {
	Date    time.Time `json:"date"`
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
}

// ErrorResponse представляет ошибку, возвращаемую API
type ErrorResponse struct {
	Message string `json:"message"`
}
