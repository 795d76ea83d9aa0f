package sales

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateTransaction checks the structural rules of a new record.
// It does not look at stock or at the catalog.
func ValidateTransaction(tx Transaction) error {
	err := validate.Struct(tx)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate transaction: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("invalid transaction %d: %s", tx.ID, strings.Join(fields, ", "))
}
