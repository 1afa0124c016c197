package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*password_hash,\s*type\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
const selectQ = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*type,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", now)
	mock.ExpectQuery(insertQ).
		WithArgs("alice@test.com", []byte("hash"), models.UserTypeEmployee).
		WillReturnRows(rows)

	u := &models.User{Email: "alice@test.com", PasswordHash: []byte("hash"), Type: models.UserTypeEmployee}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "42" || got.Email != "alice@test.com" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("alice@test.com", []byte("hash"), models.UserTypeEmployee).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@test.com", PasswordHash: []byte("hash"), Type: models.UserTypeEmployee})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("alice@test.com", []byte("hash"), models.UserTypeEmployee).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@test.com", PasswordHash: []byte("hash"), Type: models.UserTypeEmployee})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "type", "created_at"}).
		AddRow("u-1", "alice@test.com", []byte("hash"), models.UserTypeAdmin, time.Now())
	mock.ExpectQuery(selectQ).
		WithArgs("alice@test.com").
		WillReturnRows(rows)

	got, err := repo.GetUserByEmail(context.Background(), "alice@test.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.Type != models.UserTypeAdmin || string(got.PasswordHash) != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("ghost@test.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@test.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("alice@test.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByEmail(context.Background(), "alice@test.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
