package bills

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billed/internal/common"
	shared "github.com/dmitrijs2005/billed/internal/models"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var billColumns = []string{"id", "email", "type", "name", "amount", "date", "vat", "pct", "commentary",
	"file_name", "file_key", "status", "comment_admin", "created_at"}

func TestCreate_InsertsPlaceholder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO bills \(id, email, file_name, file_key, status, pct\).*RETURNING created_at`).
		WithArgs("b1", "e@test.com", "r.png", "bills/k.png", shared.StatusPending, 20).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	bill := &models.Bill{FileKey: "bills/k.png"}
	bill.ID, bill.Email, bill.FileName, bill.Status, bill.Pct = "b1", "e@test.com", "r.png", shared.StatusPending, 20

	got, err := repo.Create(context.Background(), bill)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO bills`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Bill{})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestListByEmail_ScansRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(billColumns).
		AddRow("b1", "e@test.com", "Transport", "Taxi", "100.00", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), "20.00", int64(20), "x",
			"r.png", "bills/k.png", "accepted", "ok", created).
		AddRow("b2", "e@test.com", "", "", "0", nil, nil, int64(20), "",
			"s.jpg", "bills/s.jpg", "pending", "", created)

	mock.ExpectQuery(`(?s)SELECT id, email, .* FROM bills\s+WHERE email = \$1\s+ORDER BY created_at DESC`).
		WithArgs("e@test.com").
		WillReturnRows(rows)

	got, err := repo.ListByEmail(context.Background(), "e@test.com")
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, shared.TypeTransport, first.Type)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "2022-12-31", first.Date)
	assert.True(t, first.VAT.Valid)
	assert.Equal(t, shared.StatusAccepted, first.Status)
	assert.Equal(t, "ok", first.CommentAdmin)
	assert.Equal(t, "bills/k.png", first.FileKey)

	placeholder := got[1]
	assert.Empty(t, placeholder.Date)
	assert.False(t, placeholder.VAT.Valid)
}

func TestListByEmail_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("e@test.com").WillReturnRows(sqlmock.NewRows(billColumns))

	got, err := repo.ListByEmail(context.Background(), "e@test.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByEmail_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err := repo.ListByEmail(context.Background(), "e@test.com")
	assert.ErrorContains(t, err, "failed to select bills")
}

func TestGetForUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM bills\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(billColumns).AddRow("b1", "e@test.com", "", "", "0", nil, nil, int64(20), "",
			"r.png", "bills/k.png", "pending", "", time.Now()))

	got, err := repo.GetForUpdate(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "e@test.com", got.Email)
}

func TestGetForUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FOR UPDATE`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUpdate(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	bill := &models.Bill{}
	bill.ID = "b1"
	bill.Type = shared.TypeHotel
	bill.Name = "Ibis"
	bill.Amount = decimal.RequireFromString("80.50")
	bill.Date = "2023-03-01"
	bill.Pct = 10
	bill.Commentary = "trip"

	mock.ExpectExec(`(?s)UPDATE bills SET\s+type = \$2, name = \$3, amount = \$4, date = \$5, vat = \$6, pct = \$7, commentary = \$8\s+WHERE id = \$1`).
		WithArgs("b1", shared.TypeHotel, "Ibis", "80.5", "2023-03-01", nil, 10, "trip").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), bill))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE bills`).WillReturnResult(sqlmock.NewResult(0, 0))

	bill := &models.Bill{}
	bill.ID = "gone"
	assert.ErrorIs(t, repo.Update(context.Background(), bill), common.ErrorNotFound)
}

func TestNullDate(t *testing.T) {
	assert.Nil(t, nullDate(""))
	assert.Equal(t, "2022-01-01", nullDate("2022-01-01"))
}
