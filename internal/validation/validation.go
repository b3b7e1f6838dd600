package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/iudanet/weightkeeper/internal/models"
)

// DefaultMaxValue верхняя граница значения, принимаемого с ввода
const DefaultMaxValue = 300

// OwnerPattern определяет допустимый формат владельца репозитория
// Латинские буквы, цифры, дефис и подчеркивание, 1-39 символов
var OwnerPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,39}$`)

// RepoPattern определяет допустимый формат имени репозитория
var RepoPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,100}$`)

const maxIdentityLen = 64

// ValidateValue проверяет, что 0 < v <= maxValue
func ValidateValue(v, maxValue float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("value must be a finite number")
	}
	if v <= 0 {
		return fmt.Errorf("value must be greater than 0")
	}
	if maxValue > 0 && v > maxValue {
		return fmt.Errorf("value must not exceed %s", formatMax(maxValue))
	}
	return nil
}

func formatMax(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// ValidateDate checks that s is a calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if s == "" {
		return fmt.Errorf("date cannot be empty")
	}
	if _, err := time.Parse(models.DateFormat, s); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %q", s)
	}
	return nil
}

// ValidateIdentity проверяет имя, под которым сохраняются значения.
// Запятая и перевод строки сломали бы CSV.
func ValidateIdentity(identity string) error {
	if strings.TrimSpace(identity) == "" {
		return fmt.Errorf("identity cannot be empty")
	}
	if len(identity) > maxIdentityLen {
		return fmt.Errorf("identity must not exceed %d characters", maxIdentityLen)
	}
	if strings.ContainsAny(identity, ",\r\n") {
		return fmt.Errorf("identity cannot contain commas or line breaks")
	}
	if strings.TrimSpace(identity) != identity {
		return fmt.Errorf("identity cannot start or end with whitespace")
	}
	return nil
}

// ValidateToken rejects empty tokens and tokens with whitespace inside.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("token cannot contain whitespace")
	}
	return nil
}

// ValidateLocation проверяет владельца, репозиторий и путь к файлу
func ValidateLocation(owner, repo, path string) error {
	if !OwnerPattern.MatchString(owner) {
		return fmt.Errorf("owner can only contain letters, numbers, '-' and '_' (1-39 characters): %q", owner)
	}
	if !RepoPattern.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid repository name: %q", repo)
	}
	clean := strings.Trim(path, "/")
	if clean == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	for _, segment := range strings.Split(clean, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("invalid file path: %q", path)
		}
	}
	return nil
}
