package bills

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Bill, error)
	GetForUpdate(ctx context.Context, id string) (*models.Bill, error)
	Update(ctx context.Context, bill *models.Bill) error
}
