package wishlist

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
)

// ParsePrice parses a non-negative decimal price such as "849.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, wisherror.Wrap(err, "invalid price").
			WithCode(wisherror.CodeInvalidData).
			WithDetail("value", s)
	}
	if d.IsNegative() {
		return decimal.Zero, wisherror.New("price must not be negative").
			WithCode(wisherror.CodeInvalidData).
			WithDetail("value", s)
	}
	return d, nil
}

// ParseAge parses an age group such as "16+" into its minimum age.
func ParseAge(s string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "+"))
	return parseCount(trimmed, "age group", s)
}

// ParsePieces parses a non-negative piece count.
func ParsePieces(s string) (int, error) {
	return parseCount(strings.TrimSpace(s), "piece count", s)
}

func parseCount(s, what, raw string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, wisherror.Wrap(err, "invalid "+what).
			WithCode(wisherror.CodeInvalidData).
			WithDetail("value", raw)
	}
	if n < 0 {
		return 0, wisherror.New(what + " must not be negative").
			WithCode(wisherror.CodeInvalidData).
			WithDetail("value", raw)
	}
	return n, nil
}

// ValidateKey checks a set number: non-empty, made of letters, digits and
// dashes (as in "10497-1").
func ValidateKey(key string) error {
	if key == "" {
		return wisherror.New("set number must not be empty").WithCode(wisherror.CodeInvalidInput)
	}
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return wisherror.Newf("set number %q may only contain letters, digits and dashes", key).
				WithCode(wisherror.CodeInvalidInput)
		}
	}
	return nil
}

// QuickAddFormat describes the line accepted by ParseQuickAdd.
const QuickAddFormat = "(Name, Price, Age, Pieces, Set Number, Description)"

// ParseQuickAdd parses "name, price, age, pieces, number, description".
// The line must hold exactly six comma separated fields; each is trimmed.
func ParseQuickAdd(line string) (string, Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return "", Record{}, wisherror.Newf("expected 6 comma separated fields, got %d", len(fields)).
			WithCode(wisherror.CodeInvalidInput).
			WithDetail("format", QuickAddFormat)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	key := fields[4]
	if err := ValidateKey(key); err != nil {
		return "", Record{}, err
	}

	return key, Record{
		Name:        fields[0],
		Price:       fields[1],
		AgeGroup:    fields[2],
		Pieces:      fields[3],
		Description: fields[5],
	}, nil
}
