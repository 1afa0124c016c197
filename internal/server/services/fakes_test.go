package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/server/models"
	billsrepo "github.com/dmitrijs2005/billed/internal/server/repositories/bills"
	usersrepo "github.com/dmitrijs2005/billed/internal/server/repositories/users"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	getErr  error
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *u
	cp.ID = "u-" + u.Email
	cp.CreatedAt = time.Now()
	f.byEmail[u.Email] = &cp
	return &cp, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeBills struct {
	mu        sync.Mutex
	rows      map[string]*models.Bill
	order     []string
	createErr error
	listErr   error
	updateErr error
}

func (f *fakeBills) Create(_ context.Context, b *models.Bill) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *b
	cp.CreatedAt = time.Now()
	f.rows[b.ID] = &cp
	f.order = append([]string{b.ID}, f.order...)
	return &cp, nil
}

func (f *fakeBills) ListByEmail(_ context.Context, email string) ([]*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Bill{}
	for _, id := range f.order {
		if r := f.rows[id]; r.Email == email {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBills) GetForUpdate(_ context.Context, id string) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeBills) Update(_ context.Context, b *models.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.rows[b.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

type fakeManager struct {
	users *fakeUsers
	bills *fakeBills
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users: &fakeUsers{byEmail: map[string]*models.User{}},
		bills: &fakeBills{rows: map[string]*models.Bill{}},
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Users(dbx.DBTX) usersrepo.Repository { return m.users }
func (m *fakeManager) Bills(dbx.DBTX) billsrepo.Repository { return m.bills }

type MockObjects struct {
	mock.Mock
}

func (m *MockObjects) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	data, _ := io.ReadAll(body)
	return m.Called(ctx, key, contentType, data, size).Error(0)
}

func (m *MockObjects) PresignGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockObjects) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
