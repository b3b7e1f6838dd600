package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

// UsernameKey ключ для хранения имени владельца токена в контексте
const UsernameKey contextKey = "username"

// WithUsername stores the authenticated username in ctx
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}
