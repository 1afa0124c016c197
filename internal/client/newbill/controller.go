// Package newbill drives the new-bill form: receipt validation and the
// create-then-update submission against the store.
package newbill

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/billed/internal/client/navigator"
	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/client/store"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/models"
)

// BillWriter is the part of the store the form needs.
type BillWriter interface {
	Create(ctx context.Context, collection string, req store.CreateRequest) (*store.CreateResult, error)
	Update(ctx context.Context, collection string, id string, bill models.Bill) (*models.Bill, error)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// FileField is the form control holding the chosen receipt.
type FileField interface {
	Clear()
}

// Controller backs the NewBill page. It is safe for concurrent use but runs
// at most one submission at a time.
type Controller struct {
	store   BillWriter
	nav     navigator.Navigator
	alerter Alerter
	session session.Session
	logger  logging.Logger

	mu    sync.Mutex
	state State
	file  *models.Attachment
}

// NewController wires the form to its collaborators. s is the identity the
// bills are submitted for.
func NewController(w BillWriter, nav navigator.Navigator, alerter Alerter, s session.Session, logger logging.Logger) *Controller {
	return &Controller{
		store:   w,
		nav:     nav,
		alerter: alerter,
		session: s,
		logger:  logger.With("module", "newbill", "email", s.Email),
		state:   StateIdle,
	}
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attachment returns a copy of the retained receipt, or nil.
func (c *Controller) Attachment() *models.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	cp := *c.file
	return &cp
}

// Reset forgets the receipt and returns to StateIdle. It is refused while a
// submission is running.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	c.state = StateIdle
	c.file = nil
	return nil
}

// SelectFile validates the chosen receipt. An unsupported file clears field,
// raises exactly one alert and leaves nothing retained.
func (c *Controller) SelectFile(att models.Attachment, field FileField) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInProgress
	}

	if !models.AllowedAttachment(att.Name, att.ContentType) {
		c.file = nil
		c.state = StateIdle
		c.mu.Unlock()

		if field != nil {
			field.Clear()
		}
		c.alert(InvalidFormatMessage)
		return fmt.Errorf("%w: %q is not a png, jpg or jpeg file", common.ErrValidation, att.Name)
	}

	if att.ContentType == "" {
		att.ContentType = models.ContentTypeFor(att.Name)
	}
	c.file = &att
	c.state = StateFileSelected
	c.mu.Unlock()
	return nil
}

// Submit sends the bill in two steps: Create uploads the receipt and returns
// the placeholder's id, Update then stores the form fields on it. On success
// the user is taken to the bills page. A failure leaves the form in
// StateFailed with the receipt retained, so a later Submit starts over with
// a fresh Create.
func (c *Controller) Submit(ctx context.Context, form Form) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInProgress
	}
	if c.file == nil {
		c.mu.Unlock()
		c.alert(NoAttachmentMessage)
		return ErrNoAttachment
	}
	bill, err := form.Bill(c.session.Email)
	if err != nil {
		c.mu.Unlock()
		c.alert(err.Error())
		return err
	}
	file := *c.file
	c.state = StateSubmitting
	c.mu.Unlock()

	created, err := c.store.Create(ctx, common.BillsCollection, store.CreateRequest{
		Email:      c.session.Email,
		Status:     models.StatusPending,
		Attachment: file,
	})
	if err != nil {
		return c.fail(ctx, &SubmitError{Phase: PhaseCreate, Err: err})
	}
	c.logger.Info(ctx, "placeholder bill created", "id", created.ID, "key", created.Key)

	bill.ID = created.ID
	bill.FileURL = created.FileURL
	bill.FileName = file.Name

	if _, err := c.store.Update(ctx, common.BillsCollection, created.ID, bill); err != nil {
		return c.fail(ctx, &SubmitError{Phase: PhaseUpdate, BillID: created.ID, Key: created.Key, Err: err})
	}

	c.mu.Lock()
	c.state = StateDone
	c.file = nil
	c.mu.Unlock()

	c.logger.Info(ctx, "bill submitted", "id", created.ID)
	c.nav.Navigate(navigator.PageBills)
	return nil
}

func (c *Controller) fail(ctx context.Context, err *SubmitError) error {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()

	if err.PartialRecord() {
		c.logger.Error(ctx, "bill left incomplete in store", "id", err.BillID, "key", err.Key, "error", err.Err)
	} else {
		c.logger.Error(ctx, "bill not created", "error", err.Err)
	}
	c.alert(err.UserMessage())
	return err
}

func (c *Controller) alert(msg string) {
	if c.alerter != nil {
		c.alerter.Alert(msg)
	}
}
