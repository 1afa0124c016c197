// Package bills provides the PostgreSQL-backed repository of bill rows.
package bills

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	shared "github.com/dmitrijs2005/billed/internal/models"
	"github.com/dmitrijs2005/billed/internal/server/models"
)

const columns = `id, email, type, name, amount, date, vat, pct, commentary,
		file_name, file_key, status, comment_admin, created_at`

// PostgresRepository implements bill storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the placeholder row written when a receipt is uploaded:
// owner, file reference and status. The remaining columns keep their
// defaults until Update.
func (r *PostgresRepository) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	query := `
		INSERT INTO bills (id, email, file_name, file_key, status, pct)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		bill.ID, bill.Email, bill.FileName, bill.FileKey, bill.Status, bill.Pct).Scan(&bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bill, nil
}

// ListByEmail returns the owner's bills, most recently created first.
func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]*models.Bill, error) {
	query := `SELECT ` + columns + ` FROM bills
		WHERE email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select bills: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetForUpdate loads a bill and locks its row for the rest of the
// transaction. Unknown ids yield common.ErrorNotFound.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Bill, error) {
	query := `SELECT ` + columns + ` FROM bills
		WHERE id = $1
		FOR UPDATE
	`
	bill, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bill, nil
}

// Update writes the client-editable columns. The file reference, owner and
// status are left untouched.
func (r *PostgresRepository) Update(ctx context.Context, bill *models.Bill) error {
	query := `
		UPDATE bills SET
			type = $2, name = $3, amount = $4, date = $5, vat = $6, pct = $7, commentary = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.Type, bill.Name, bill.Amount, nullDate(bill.Date), bill.VAT, bill.Pct, bill.Commentary)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(s scanner) (*models.Bill, error) {
	var (
		item models.Bill
		date sql.NullTime
	)
	if err := s.Scan(
		&item.ID, &item.Email, &item.Type, &item.Name, &item.Amount, &date, &item.VAT, &item.Pct,
		&item.Commentary, &item.FileName, &item.FileKey, &item.Status, &item.CommentAdmin, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	if date.Valid {
		item.Date = date.Time.Format(shared.DateLayout)
	}
	return &item, nil
}

func nullDate(date string) any {
	if date == "" {
		return nil
	}
	return date
}
