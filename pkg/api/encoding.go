package api

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// lineWidth ширина строки base64 в ответах GET (как у GitHub)
const lineWidth = 60

// EncodeContent кодирует содержимое файла в base64 одной строкой (для PUT)
func EncodeContent(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeContentWrapped кодирует содержимое в base64 с переносом строк (для GET)
func EncodeContentWrapped(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for len(encoded) > lineWidth {
		b.WriteString(encoded[:lineWidth])
		b.WriteByte('\n')
		encoded = encoded[lineWidth:]
	}
	b.WriteString(encoded)
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// DecodeContent декодирует base64 содержимое, игнорируя переводы строк
func DecodeContent(content string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)

	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 content: %w", err)
	}
	return data, nil
}
