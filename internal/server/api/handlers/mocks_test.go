package handlers_test

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/models"
	servermodels "github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email string, password []byte, userType string) (*servermodels.User, error) {
	args := m.Called(ctx, email, string(password), userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servermodels.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email string, password []byte) (*services.LoginResult, error) {
	args := m.Called(ctx, email, string(password))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

// MockBillService
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Create(ctx context.Context, email string, up services.Upload) (*services.CreateResult, error) {
	args := m.Called(ctx, email, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CreateResult), args.Error(1)
}

func (m *MockBillService) Update(ctx context.Context, email, id string, bill models.Bill) (*models.Bill, error) {
	args := m.Called(ctx, email, id, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, email string) ([]models.Bill, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bill), args.Error(1)
}
