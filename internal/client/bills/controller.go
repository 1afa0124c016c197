// Package bills turns the store's bill records into the employee's
// newest-first bill list and handles the receipt preview.
package bills

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/models"
)

// ReceiptTitle is the heading of the attachment preview.
const ReceiptTitle = "Receipt"

// Lister is the part of the store the list needs.
type Lister interface {
	List(ctx context.Context, collection string) ([]models.Bill, error)
}

// Modal displays an image in a dialog.
type Modal interface {
	Show(title string, imageURL string)
}

// View is a display-ready bill. Bill.Date keeps the canonical form used for
// ordering; DisplayDate is what gets rendered.
type View struct {
	models.Bill
	DisplayDate   string
	DisplayStatus string
}

// Controller backs the Bills page.
type Controller struct {
	store  Lister
	modal  Modal
	logger logging.Logger
}

// NewController wires the list to its store, the preview modal and the
// session owner (used for log context only; the store scopes the records).
func NewController(store Lister, modal Modal, s session.Session, logger logging.Logger) *Controller {
	return &Controller{
		store:  store,
		modal:  modal,
		logger: logger.With("module", "bills", "email", s.Email),
	}
}

// GetBills fetches the bills and returns them newest first.
//
// A record whose date cannot be parsed is kept with its raw date as display
// value and a warning is logged. Such records follow every dated bill, in
// the order the store returned them. Records with equal dates keep the store
// order too. Store errors are returned as is (wrapped).
func (c *Controller) GetBills(ctx context.Context) ([]View, error) {
	bills, err := c.store.List(ctx, common.BillsCollection)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	type entry struct {
		view  View
		dated bool
	}
	entries := make([]entry, 0, len(bills))
	for _, b := range bills {
		v, err := normalize(b)
		if err != nil {
			c.logger.Warn(ctx, "keeping bill with unformatted date", "id", b.ID, "date", b.Date, "error", err)
		}
		entries = append(entries, entry{view: v, dated: err == nil})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.dated && b.dated:
			return strings.Compare(b.view.Date, a.view.Date)
		case a.dated:
			return -1
		case b.dated:
			return 1
		default:
			return 0
		}
	})

	views := make([]View, 0, len(entries))
	for _, e := range entries {
		views = append(views, e.view)
	}

	c.logger.Debug(ctx, "bills fetched", "count", len(views))
	return views, nil
}

// normalize never drops the record: on error the returned view carries the
// raw date and the error wraps common.ErrMalformedRecord.
func normalize(b models.Bill) (View, error) {
	v := View{Bill: b, DisplayDate: b.Date, DisplayStatus: FormatStatus(b.Status)}

	t, err := models.ParseDate(b.Date)
	if err != nil {
		return v, fmt.Errorf("%w: bill %q: %v", common.ErrMalformedRecord, b.ID, err)
	}

	v.Date = t.Format(models.DateLayout)
	v.DisplayDate = FormatDate(t)
	return v, nil
}

// PreviewAttachment opens the receipt of v in the modal. A bill without a
// file URL has nothing to preview; it returns false and does nothing.
func (c *Controller) PreviewAttachment(v View) bool {
	if c.modal == nil || strings.TrimSpace(v.FileURL) == "" {
		return false
	}
	c.modal.Show(ReceiptTitle, v.FileURL)
	return true
}
