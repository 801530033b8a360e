package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/model"
)

// Validation errors.
var (
	ErrNilContext = errors.New("context cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", common.ErrValidation, paramName)
	}
	return nil
}

// validateKind ensures a kind is one of the two known values.
func validateKind(k model.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: unknown kind %q", common.ErrValidation, k)
	}
	return nil
}

// validateTransaction validates a transaction before it reaches storage.
// Positivity of the amount is the store's last line of defense; parsing
// already enforces it at the input boundary.
func validateTransaction(txn *model.Transaction) error {
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", common.ErrValidation)
	}
	if err := validateKind(txn.Kind); err != nil {
		return err
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	return nil
}
