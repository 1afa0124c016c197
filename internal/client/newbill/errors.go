package newbill

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/common"
)

// User-visible messages.
const (
	InvalidFormatMessage = "Invalid file format: only png, jpg and jpeg receipts are accepted"
	NoAttachmentMessage  = "Please attach a receipt (png, jpg or jpeg) before sending"
	createFailedMessage  = "The bill could not be sent, nothing was saved. Please try again."
	updateFailedMessage  = "The receipt was uploaded but the bill details could not be saved. Please try again."
)

var (
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrNoAttachment         = fmt.Errorf("%w: no attachment selected", common.ErrValidation)
)

// Phase of the two-step submission.
type Phase string

const (
	PhaseCreate Phase = "create"
	PhaseUpdate Phase = "update"
)

// SubmitError reports a failed submission. A PhaseUpdate failure means a
// placeholder record (BillID, Key) with the attachment already exists in the
// store with incomplete metadata.
type SubmitError struct {
	Phase  Phase
	BillID string
	Key    string
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Phase == PhaseUpdate {
		return fmt.Sprintf("update bill %s: %v", e.BillID, e.Err)
	}
	return fmt.Sprintf("create bill: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// PartialRecord reports whether the store holds an incomplete record.
func (e *SubmitError) PartialRecord() bool {
	return e.Phase == PhaseUpdate
}

// UserMessage is the text shown to the employee.
func (e *SubmitError) UserMessage() string {
	if e.PartialRecord() {
		return updateFailedMessage
	}
	return createFailedMessage
}
