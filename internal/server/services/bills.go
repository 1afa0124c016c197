package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/logging"
	shared "github.com/dmitrijs2005/billed/internal/models"
	"github.com/dmitrijs2005/billed/internal/server/config"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/billed/internal/server/storage"
	"github.com/google/uuid"
)

// Upload is a receipt received with a new bill.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateResult identifies the placeholder record created for an upload.
type CreateResult struct {
	ID      string `json:"id"`
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// BillService stores bills and their receipts.
type BillService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	objects       storage.ObjectStore
	logger        logging.Logger
	maxUploadSize int64
	now           func() time.Time
}

func NewBillService(db *sql.DB, m repomanager.RepositoryManager, objects storage.ObjectStore, cfg *config.Config, logger logging.Logger) *BillService {
	return &BillService{
		db:            db,
		repomanager:   m,
		objects:       objects,
		logger:        logger.With("module", "bills"),
		maxUploadSize: cfg.MaxUploadSize,
		now:           time.Now,
	}
}

// Create stores the receipt and a pending placeholder bill owned by email.
// If the row cannot be written the stored object is removed again.
func (s *BillService) Create(ctx context.Context, email string, up Upload) (*CreateResult, error) {
	if !shared.AllowedAttachment(up.FileName, up.ContentType) {
		return nil, fmt.Errorf("%w: receipt must be a png, jpg or jpeg image", common.ErrValidation)
	}
	if len(up.Data) == 0 {
		return nil, fmt.Errorf("%w: empty receipt", common.ErrValidation)
	}
	if s.maxUploadSize > 0 && int64(len(up.Data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: receipt larger than %d bytes", common.ErrValidation, s.maxUploadSize)
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = shared.ContentTypeFor(up.FileName)
	}

	key := storage.ObjectKey(email, up.FileName, s.now())
	if err := s.objects.Put(ctx, key, contentType, bytes.NewReader(up.Data), int64(len(up.Data))); err != nil {
		return nil, fmt.Errorf("%w: storing receipt: %w", common.ErrorInternal, err)
	}

	bill := &models.Bill{FileKey: key}
	bill.ID = uuid.NewString()
	bill.Email = email
	bill.FileName = up.FileName
	bill.Status = shared.StatusPending
	bill.Pct = shared.DefaultPct

	repo := s.repomanager.Bills(s.db)
	if _, err := repo.Create(ctx, bill); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.logger.Error(ctx, "orphaned receipt", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("%w: creating bill: %w", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "bill created", "id", bill.ID, "email", email, "key", key)
	return &CreateResult{ID: bill.ID, FileURL: s.fileURL(ctx, key), Key: key}, nil
}

// validate checks the client-writable fields of in and returns them in
// canonical form.
func validate(in shared.Bill) (shared.Bill, error) {
	var errs []error

	if !in.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown expense type %q", in.Type))
	}
	if in.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount %s is negative", in.Amount))
	}
	date, err := shared.CanonicalDate(in.Date)
	if err != nil {
		errs = append(errs, fmt.Errorf("date %q is not a valid YYYY-MM-DD date", in.Date))
	}
	if in.VAT.Valid && in.VAT.Decimal.IsNegative() {
		errs = append(errs, fmt.Errorf("vat %s is negative", in.VAT.Decimal))
	}
	if in.Pct < 0 || in.Pct > 100 {
		errs = append(errs, fmt.Errorf("pct %d is out of range", in.Pct))
	}

	if len(errs) > 0 {
		return shared.Bill{}, fmt.Errorf("%w: %w", common.ErrValidation, errors.Join(errs...))
	}

	in.Date = date
	in.Name = strings.TrimSpace(in.Name)
	in.Commentary = strings.TrimSpace(in.Commentary)
	return in, nil
}

// Update writes the details of bill id. Only the owner may update a bill;
// anyone else gets common.ErrorNotFound. The receipt reference and the
// review status are kept from the stored row.
func (s *BillService) Update(ctx context.Context, email, id string, in shared.Bill) (*shared.Bill, error) {
	in, err := validate(in)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	var stored *models.Bill
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bills(tx)

		cur, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur.Email != email {
			return common.ErrorNotFound
		}

		cur.Type = in.Type
		cur.Name = in.Name
		cur.Amount = in.Amount
		cur.Date = in.Date
		cur.VAT = in.VAT
		cur.Pct = in.Pct
		cur.Commentary = in.Commentary

		if err := repo.Update(ctx, cur); err != nil {
			return err
		}
		stored = cur
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: updating bill: %w", common.ErrorInternal, err)
	}

	out := stored.Bill
	out.FileURL = s.fileURL(ctx, stored.FileKey)
	return &out, nil
}

// List returns the bills owned by email, newest first, with fresh receipt links.
func (s *BillService) List(ctx context.Context, email string) ([]shared.Bill, error) {
	rows, err := s.repomanager.Bills(s.db).ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: listing bills: %w", common.ErrorInternal, err)
	}

	out := make([]shared.Bill, 0, len(rows))
	for _, r := range rows {
		b := r.Bill
		b.FileURL = s.fileURL(ctx, r.FileKey)
		out = append(out, b)
	}
	return out, nil
}

// fileURL presigns key. A failure leaves the link empty; the record itself
// is still served.
func (s *BillService) fileURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.objects.PresignGet(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "presign failed", "key", key, "error", err)
		return ""
	}
	return url
}
