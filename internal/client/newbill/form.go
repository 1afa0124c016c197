package newbill

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/models"
	"github.com/shopspring/decimal"
)

// Form holds the raw values typed into the new-bill form.
type Form struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// Bill validates the form and builds the pending bill owned by email.
// Every malformed field is reported; the error wraps common.ErrValidation.
func (f Form) Bill(email string) (models.Bill, error) {
	var errs []error

	billType := models.BillType(strings.TrimSpace(f.Type))
	if !billType.Valid() {
		errs = append(errs, fmt.Errorf("unknown expense type %q", f.Type))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("amount %q is not a number", f.Amount))
	case amount.IsNegative():
		errs = append(errs, fmt.Errorf("amount %q is negative", f.Amount))
	}

	date, err := models.CanonicalDate(strings.TrimSpace(f.Date))
	if err != nil {
		errs = append(errs, fmt.Errorf("date %q is not a valid YYYY-MM-DD date", f.Date))
	}

	var vat decimal.NullDecimal
	if v := strings.TrimSpace(f.VAT); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("vat %q is not a number", f.VAT))
		} else {
			vat = decimal.NewNullDecimal(parsed)
		}
	}

	if len(errs) > 0 {
		return models.Bill{}, fmt.Errorf("%w: %w", common.ErrValidation, errors.Join(errs...))
	}

	return models.Bill{
		Email:      email,
		Type:       billType,
		Name:       strings.TrimSpace(f.Name),
		Amount:     amount,
		Date:       date,
		VAT:        vat,
		Pct:        parsePct(f.Pct),
		Commentary: strings.TrimSpace(f.Commentary),
		Status:     models.StatusPending,
	}, nil
}

// parsePct falls back to models.DefaultPct for blank, non-numeric or out of
// range input.
func parsePct(s string) int {
	pct, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || pct < 0 || pct > 100 {
		return models.DefaultPct
	}
	return pct
}
