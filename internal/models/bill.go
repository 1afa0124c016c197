// Package models defines the bill record exchanged between the client and
// the store, together with the small set of rules both sides agree on.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical, lexicographically sortable form of Bill.Date.
const DateLayout = "2006-01-02"

// DefaultPct is applied when the VAT percentage is blank or invalid.
const DefaultPct = 20

// BillType is the expense category.
type BillType string

const (
	TypeTransport      BillType = "Transport"
	TypeRestaurant     BillType = "Restaurant"
	TypeHotel          BillType = "Hotel"
	TypeOnlineServices BillType = "Online services"
	TypeIT             BillType = "IT and electronics"
	TypeEquipment      BillType = "Equipment"
	TypeOfficeSupplies BillType = "Office supplies"
)

// BillTypes lists every accepted category in display order.
var BillTypes = []BillType{
	TypeTransport,
	TypeRestaurant,
	TypeHotel,
	TypeOnlineServices,
	TypeIT,
	TypeEquipment,
	TypeOfficeSupplies,
}

// Valid reports whether t is one of BillTypes.
func (t BillType) Valid() bool {
	for _, v := range BillTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Status is owned by the reviewer workflow; the employee side only reads it.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

// Bill is one expense-report record.
type Bill struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Type         BillType            `json:"type"`
	Name         string              `json:"name"`
	Amount       decimal.Decimal     `json:"amount"`
	Date         string              `json:"date"`
	VAT          decimal.NullDecimal `json:"vat"`
	Pct          int                 `json:"pct"`
	Commentary   string              `json:"commentary"`
	FileURL      string              `json:"fileUrl"`
	FileName     string              `json:"fileName"`
	Status       Status              `json:"status"`
	CommentAdmin string              `json:"commentAdmin,omitempty"`
}

// ParseDate parses a stored bill date. Besides the canonical YYYY-MM-DD
// form it accepts RFC 3339 timestamps, which some stores emit for DATE
// columns.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return ts, nil
	}
	return time.Time{}, err
}

// CanonicalDate returns s in DateLayout form, or an error when s is not a
// valid calendar date.
func CanonicalDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
