package store

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/models"
)

// CreateRequest is the phase-one payload: the attachment plus the minimal
// bill stub.
type CreateRequest struct {
	Email      string
	Status     models.Status
	Attachment models.Attachment
}

// CreateResult is what the store assigns to a freshly created placeholder.
type CreateResult struct {
	ID      string `json:"id"`
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// Store is the remote persistence gateway for bill records and attachments.
type Store interface {
	List(ctx context.Context, collection string) ([]models.Bill, error)
	Create(ctx context.Context, collection string, req CreateRequest) (*CreateResult, error)
	Update(ctx context.Context, collection string, id string, bill models.Bill) (*models.Bill, error)
}

// Authenticator obtains sessions from the store.
type Authenticator interface {
	Login(ctx context.Context, email string, password []byte) (*session.Session, error)
	Register(ctx context.Context, email string, password []byte, userType string) error
}
