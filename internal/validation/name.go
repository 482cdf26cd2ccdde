package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameLen максимальная длина имени чата или пресета в символах
const MaxNameLen = 200

// ValidateName проверяет имя чата или пресета
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	if strings.ContainsAny(name, "\n\r\t") {
		return fmt.Errorf("name cannot contain line breaks or tabs")
	}

	return nil
}

// DocumentNamePattern имя документа синхронизации: буквы, цифры, '_', '-' и суффикс .json
var DocumentNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}\.json$`)

// ValidateDocumentName проверяет имя документа в пути запроса
func ValidateDocumentName(name string) error {
	if !DocumentNamePattern.MatchString(name) {
		return fmt.Errorf("invalid document name %q", name)
	}
	return nil
}
