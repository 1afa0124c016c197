package newbill

import (
	"testing"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Bill(t *testing.T) {
	b, err := validForm.Bill("employee@test.com")
	require.NoError(t, err)

	assert.Equal(t, "employee@test.com", b.Email)
	assert.Equal(t, models.TypeTransport, b.Type)
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "2022-12-31", b.Date)
	assert.Equal(t, 20, b.Pct)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Empty(t, b.ID)
}

func TestForm_VATIsOptional(t *testing.T) {
	f := validForm
	f.VAT = "  "

	b, err := f.Bill("e@test.com")
	require.NoError(t, err)
	assert.False(t, b.VAT.Valid)
}

func TestForm_DecimalAmount(t *testing.T) {
	f := validForm
	f.Amount = "12.50"

	b, err := f.Bill("e@test.com")
	require.NoError(t, err)
	assert.Equal(t, "12.5", b.Amount.String())
}

func TestParsePct(t *testing.T) {
	tests := map[string]int{
		"":     models.DefaultPct,
		"abc":  models.DefaultPct,
		"-1":   models.DefaultPct,
		"101":  models.DefaultPct,
		"0":    0,
		" 10 ": 10,
		"100":  100,
	}
	for in, want := range tests {
		assert.Equal(t, want, parsePct(in), "input %q", in)
	}
}

func TestForm_ReportsEveryInvalidField(t *testing.T) {
	f := Form{Type: "Spaceship", Amount: "-3", Date: "31/12/2022", VAT: "twenty"}

	_, err := f.Bill("e@test.com")
	require.ErrorIs(t, err, common.ErrValidation)
	for _, fragment := range []string{"Spaceship", "negative", "31/12/2022", "twenty"} {
		assert.ErrorContains(t, err, fragment)
	}
}

func TestForm_CanonicalizesTimestampDate(t *testing.T) {
	f := validForm
	f.Date = "2022-12-31T10:00:00Z"

	b, err := f.Bill("e@test.com")
	require.NoError(t, err)
	assert.Equal(t, "2022-12-31", b.Date)
}
