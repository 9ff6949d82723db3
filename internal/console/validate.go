package console

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// CancelToken aborts the current operation when typed at any prompt.
const CancelToken = "back"

// Input validation errors. Their messages are shown to the operator.
var (
	ErrNotANumber  = errors.New("invalid input, enter a valid number")
	ErrNotPositive = errors.New("value must be greater than zero, try again")
	ErrBadDate     = errors.New("invalid date, use the YYYY-MM-DD format")
	ErrBlank       = errors.New("field cannot be empty, type it again")
	ErrNotYesNo    = errors.New("invalid answer, type only Y or N")
)

// IsCancel reports whether s is the cancel token.
func IsCancel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), CancelToken)
}

// ParsePositive parses a decimal number greater than zero.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return model.Date{}, ErrBadDate
	}
	return d, nil
}

// ParseText accepts any text that is not blank and returns it trimmed.
func ParseText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrBlank
	}
	return s, nil
}

// ParseYesNo accepts y, yes, n or no in any case.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrNotYesNo
	}
}
