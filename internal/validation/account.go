// Package validation проверки пользовательского ввода, общие для клиента и сервера.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
)

var (
	// ErrInvalidUsername имя пользователя не подходит под UsernamePattern
	ErrInvalidUsername = errors.New("invalid username")
	// ErrWeakPassword пароль короче MinPasswordLen
	ErrWeakPassword = errors.New("password is too short")
	// ErrInvalidEmail адрес не разбирается как email
	ErrInvalidEmail = errors.New("invalid email address")
)

// UsernamePattern латиница, цифры и '_', от 3 до 32 символов
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// MinPasswordLen минимальная длина пароля учетной записи
const MinPasswordLen = 8

// ValidateUsername проверяет имя учетной записи сервера документов
func ValidateUsername(username string) error {
	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("%w: use 3-32 letters, digits or '_'", ErrInvalidUsername)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, MinPasswordLen)
	}
	return nil
}

// ValidateEmail проверяет адрес. Пустой email допустим, он только отображается в статусе.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}
