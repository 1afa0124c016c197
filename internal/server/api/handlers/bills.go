package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/models"
	"github.com/dmitrijs2005/billed/internal/server/api/middleware"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for form fields and part headers on
// top of the receipt itself.
const multipartOverhead = 64 << 10

// BillService is what the bills handler needs from the bill logic.
type BillService interface {
	Create(ctx context.Context, email string, up services.Upload) (*services.CreateResult, error)
	Update(ctx context.Context, email, id string, bill models.Bill) (*models.Bill, error)
	List(ctx context.Context, email string) ([]models.Bill, error)
}

// RestBillHandler serves /bills for the authenticated account.
type RestBillHandler struct {
	billService   BillService
	maxUploadSize int64
}

func NewRestBillHandler(billService BillService, maxUploadSize int64) *RestBillHandler {
	return &RestBillHandler{billService: billService, maxUploadSize: maxUploadSize}
}

// List handles GET /bills.
func (h *RestBillHandler) List(c *gin.Context) {
	bills, err := h.billService.List(c.Request.Context(), c.GetString(middleware.ContextKeyEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// Create handles POST /bills. The multipart form carries the receipt as
// "file" plus the owner's "email" and a "status"; the owner must be the
// caller and the status of a new bill is always pending.
func (h *RestBillHandler) Create(c *gin.Context) {
	email := c.GetString(middleware.ContextKeyEmail)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(err)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "receipt is too large"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "a receipt file is required"})
		return
	}

	if owner := strings.TrimSpace(c.PostForm("email")); owner != "" && !strings.EqualFold(owner, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "bills can only be created for your own account"})
		return
	}
	if status := c.PostForm("status"); status != "" && models.Status(status) != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("new bills must be %s", models.StatusPending)})
		return
	}
	if fh.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "receipt is too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, fmt.Errorf("%w: opening upload: %w", common.ErrorInternal, err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		respondError(c, fmt.Errorf("%w: reading upload: %w", common.ErrorInternal, err))
		return
	}

	res, err := h.billService.Create(c.Request.Context(), email, services.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Update handles PATCH /bills/:id.
func (h *RestBillHandler) Update(c *gin.Context) {
	var bill models.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed bill"})
		return
	}

	stored, err := h.billService.Update(c.Request.Context(), c.GetString(middleware.ContextKeyEmail), c.Param("id"), bill)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
