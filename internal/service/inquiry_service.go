package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerDirectory answers whether a client is already a known customer
type CustomerDirectory interface {
	IsExistingCustomer(ctx context.Context, name string) (bool, error)
}

// InquiryService handles inquiry records: creation with KPI backfill,
// updates with status changes routed through the KPI engine, and attachments
type InquiryService struct {
	inquiryRepo    *repository.InquiryRepository
	userRepo       *repository.UserRepository
	engine         *kpi.Engine
	storage        storage.Storage
	customers      CustomerDirectory
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewInquiryService creates a new InquiryService. customers may be nil, in
// which case is_new_customer is only set from the request.
func NewInquiryService(
	inquiryRepo *repository.InquiryRepository,
	userRepo *repository.UserRepository,
	engine *kpi.Engine,
	store storage.Storage,
	customers CustomerDirectory,
	maxUploadBytes int64,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		inquiryRepo:    inquiryRepo,
		userRepo:       userRepo,
		engine:         engine,
		storage:        store,
		customers:      customers,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Create stores a new inquiry. Inquiries created directly at a non-pending
// status get their missing timestamps and grades backfilled.
func (s *InquiryService) Create(ctx context.Context, req *domain.CreateInquiryRequest) (*domain.InquiryDTO, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrMissingContent
	}
	if req.SalesManagerID != nil {
		if err := s.checkSalesManager(ctx, s.userRepo, *req.SalesManagerID); err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = domain.InquiryStatusPending
	}

	createdAt := s.engine.Now().UTC()
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC().Truncate(kpi.TimestampPrecision)
	}

	inquiry := &domain.Inquiry{
		Client:         strings.TrimSpace(req.Client),
		Text:           req.Text,
		Comment:        req.Comment,
		SalesManagerID: req.SalesManagerID,
		IsNewCustomer:  s.isNewCustomer(ctx, req.Client, req.IsNewCustomer),
		Status:         status,
		AutoCompletion: req.AutoCompletion,
		CreatedAt:      createdAt,
	}

	if status != domain.InquiryStatusPending {
		inquiry.QuotedAt = utcPtr(req.QuotedAt)
		inquiry.SuccessAt = utcPtr(req.SuccessAt)
		inquiry.FailedAt = utcPtr(req.FailedAt)
		s.engine.Backfill(inquiry)
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.logger.Info("inquiry created",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("status", string(inquiry.Status)),
		zap.Bool("is_new_customer", inquiry.IsNewCustomer),
	)

	dto := mapper.ToInquiryDTO(inquiry)
	return &dto, nil
}

// isNewCustomer prefers an explicit flag, then the ERP lookup. Lookup
// failures are logged and treated as an existing customer.
func (s *InquiryService) isNewCustomer(ctx context.Context, client string, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if s.customers == nil {
		return false
	}
	exists, err := s.customers.IsExistingCustomer(ctx, client)
	if err != nil {
		s.logger.Warn("customer lookup failed, assuming existing customer",
			zap.String("client", client),
			zap.Error(err),
		)
		return false
	}
	return !exists
}

func (s *InquiryService) checkSalesManager(ctx context.Context, users *repository.UserRepository, id uuid.UUID) error {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidSalesManager
		}
		return fmt.Errorf("failed to verify sales manager: %w", err)
	}
	if !user.IsActive || !user.UserType.IsManagerOrAdmin() {
		return ErrInvalidSalesManager
	}
	return nil
}

// GetByID retrieves an inquiry by ID
func (s *InquiryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InquiryDTO, error) {
	inquiry, err := s.getInquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToInquiryDTO(inquiry)
	return &dto, nil
}

// Stats returns status counters and the conversion rate over all inquiries
func (s *InquiryService) Stats(ctx context.Context) (*domain.InquiryStatsDTO, error) {
	counts, err := s.inquiryRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.InquiryStatsDTO{
		InquiryCounts:  counts,
		ConversionRate: kpi.Round(kpi.Percentage(float64(counts.Success), float64(counts.Total)), 2),
	}, nil
}

func (s *InquiryService) getInquiry(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return inquiry, nil
}

// List returns a page of inquiries
func (s *InquiryService) List(ctx context.Context, page, pageSize int, filters *repository.InquiryFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	inquiries, total, err := s.inquiryRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.PaginatedResponse{
		Data:       mapper.ToInquiryDTOs(inquiries),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update. A status change goes through the KPI
// engine in the same transaction as the other field changes.
func (s *InquiryService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInquiryRequest) (*domain.InquiryDTO, error) {
	err := s.inquiryRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.inquiryRepo.WithTx(tx)

		inq, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInquiryNotFound
			}
			return fmt.Errorf("failed to load inquiry: %w", err)
		}

		fields := map[string]interface{}{}
		if req.Client != nil {
			fields["client"] = strings.TrimSpace(*req.Client)
		}
		if req.Text != nil {
			if strings.TrimSpace(*req.Text) == "" && !inq.HasAttachment() {
				return ErrMissingContent
			}
			fields["text"] = *req.Text
		}
		if req.Comment != nil {
			fields["comment"] = *req.Comment
		}
		if req.SalesManagerID != nil {
			if err := s.checkSalesManager(ctx, s.userRepo.WithTx(tx), *req.SalesManagerID); err != nil {
				return err
			}
			fields["sales_manager_id"] = *req.SalesManagerID
		}
		if req.IsNewCustomer != nil {
			fields["is_new_customer"] = *req.IsNewCustomer
		}
		if err := repo.UpdateFields(ctx, id, fields); err != nil {
			return fmt.Errorf("failed to update inquiry: %w", err)
		}

		if req.Status != nil {
			patch, err := s.engine.Transition(inq, *req.Status, nil)
			if err != nil {
				return err
			}
			if err := repo.ApplyKPIPatch(ctx, id, patch); err != nil {
				return fmt.Errorf("failed to save inquiry KPI fields: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inquiry updated", zap.String("inquiry_id", id.String()))
	return s.GetByID(ctx, id)
}

// Delete removes a pending or failed inquiry and its attachment
func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	inquiry, err := s.getInquiry(ctx, id)
	if err != nil {
		return err
	}
	if inquiry.Status == domain.InquiryStatusQuoted || inquiry.Status == domain.InquiryStatusSuccess {
		return ErrInquiryNotDeletable
	}

	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInquiryNotFound
		}
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}

	if inquiry.HasAttachment() {
		s.removeAttachment(ctx, inquiry.AttachmentPath)
	}

	s.logger.Info("inquiry deleted", zap.String("inquiry_id", id.String()))
	return nil
}

// UploadAttachment stores a file for the inquiry, replacing any previous one
func (s *InquiryService) UploadAttachment(ctx context.Context, id uuid.UUID, filename, contentType string, data io.Reader) (*domain.InquiryDTO, error) {
	inquiry, err := s.getInquiry(ctx, id)
	if err != nil {
		return nil, err
	}

	limited := &sizeLimitedReader{r: data, remaining: s.maxUploadBytes}
	storagePath, size, err := s.storage.Upload(ctx, "inquiries/"+id.String(), filename, contentType, limited)
	if err != nil {
		if limited.exceeded {
			return nil, ErrAttachmentTooLarge
		}
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	err = s.inquiryRepo.UpdateFields(ctx, id, map[string]interface{}{
		"attachment_path": storagePath,
		"attachment_name": filename,
	})
	if err != nil {
		s.removeAttachment(ctx, storagePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	if inquiry.HasAttachment() {
		s.removeAttachment(ctx, inquiry.AttachmentPath)
	}

	s.logger.Info("inquiry attachment uploaded",
		zap.String("inquiry_id", id.String()),
		zap.String("filename", filename),
		zap.Int64("size", size),
	)
	return s.GetByID(ctx, id)
}

// DownloadAttachment opens the stored attachment. The caller closes the reader.
func (s *InquiryService) DownloadAttachment(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	inquiry, err := s.getInquiry(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !inquiry.HasAttachment() {
		return nil, "", ErrAttachmentNotFound
	}

	rc, err := s.storage.Download(ctx, inquiry.AttachmentPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrAttachmentNotFound
		}
		return nil, "", fmt.Errorf("failed to open attachment: %w", err)
	}
	return rc, inquiry.AttachmentName, nil
}

func (s *InquiryService) removeAttachment(ctx context.Context, storagePath string) {
	if err := s.storage.Delete(ctx, storagePath); err != nil {
		s.logger.Warn("failed to delete attachment", zap.String("path", storagePath), zap.Error(err))
	}
}

// sizeLimitedReader fails once more than remaining bytes have been read
type sizeLimitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			l.exceeded = true
			return 0, ErrAttachmentTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
