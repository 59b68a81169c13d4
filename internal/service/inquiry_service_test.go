package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/service"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryService_CreatePending(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	manager := testutil.CreateTestUser(t, f.db, "anna", domain.UserTypeManager)

	dto, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{
		Client:         "  ACME  ",
		Text:           "Need 40 pallets",
		SalesManagerID: &manager.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME", dto.Client)
	assert.Equal(t, domain.InquiryStatusPending, dto.Status)
	assert.Equal(t, "2024-03-04T02:00:00Z", dto.CreatedAt)
	assert.True(t, dto.IsNewCustomer, "unknown client is a new customer")
	assert.Nil(t, dto.QuoteGrade)
}

func TestInquiryService_CreateNewCustomerFlag(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	f.directory.known["Known Ltd"] = true

	known, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "Known Ltd", Text: "x"})
	require.NoError(t, err)
	assert.False(t, known.IsNewCustomer)

	explicit, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "Known Ltd", Text: "x", IsNewCustomer: ptr(true)})
	require.NoError(t, err)
	assert.True(t, explicit.IsNewCustomer)

	f.directory.err = errors.New("warehouse down")
	fallback, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "Other", Text: "x"})
	require.NoError(t, err)
	assert.False(t, fallback.IsNewCustomer)
}

func TestInquiryService_CreateBackfillsResolvedInquiry(t *testing.T) {
	f := setup(t, at(6, 12, 0))
	ctx := context.Background()
	created := at(4, 8, 0)

	dto, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{
		Client:    "ACME",
		Text:      "imported",
		Status:    domain.InquiryStatusSuccess,
		CreatedAt: &created,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusSuccess, dto.Status)
	require.NotNil(t, dto.QuotedAt)
	assert.Equal(t, dto.CreatedAt, *dto.QuotedAt)
	assert.Equal(t, ptr(domain.GradeA), dto.QuoteGrade)
	require.NotNil(t, dto.SuccessAt)
	require.NotNil(t, dto.ResolutionTimeHours)
	// Monday 08:00 to Wednesday 12:00
	assert.Equal(t, 52.0, *dto.ResolutionTimeHours)
	assert.Equal(t, ptr(domain.GradeA), dto.CompletionGrade)
}

func TestInquiryService_CreateValidation(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	customer := testutil.CreateTestUser(t, f.db, "buyer", domain.UserTypeCustomer)

	_, err := f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "ACME", Text: "   "})
	assert.ErrorIs(t, err, service.ErrMissingContent)

	_, err = f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "ACME", Text: "x", SalesManagerID: &customer.ID})
	assert.ErrorIs(t, err, service.ErrInvalidSalesManager)

	missing := uuid.New()
	_, err = f.inquirySvc.Create(ctx, &domain.CreateInquiryRequest{Client: "ACME", Text: "x", SalesManagerID: &missing})
	assert.ErrorIs(t, err, service.ErrInvalidSalesManager)
}

func TestInquiryService_UpdateRoutesStatusThroughEngine(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	quoted := domain.InquiryStatusQuoted
	dto, err := f.inquirySvc.Update(ctx, inq.ID, &domain.UpdateInquiryRequest{
		Comment: ptr("called back"),
		Status:  &quoted,
	})
	require.NoError(t, err)
	assert.Equal(t, "called back", dto.Comment)
	assert.Equal(t, domain.InquiryStatusQuoted, dto.Status)
	assert.Equal(t, ptr(domain.GradeA), dto.QuoteGrade)

	pending := domain.InquiryStatusPending
	_, err = f.inquirySvc.Update(ctx, inq.ID, &domain.UpdateInquiryRequest{
		Comment: ptr("should roll back"),
		Status:  &pending,
	})
	assert.ErrorIs(t, err, kpi.ErrInvalidTransition)

	stored, err := f.inquirySvc.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, "called back", stored.Comment)

	_, err = f.inquirySvc.Update(ctx, inq.ID, &domain.UpdateInquiryRequest{Text: ptr("")})
	assert.ErrorIs(t, err, service.ErrMissingContent)

	_, err = f.inquirySvc.Update(ctx, uuid.New(), &domain.UpdateInquiryRequest{Comment: ptr("x")})
	assert.ErrorIs(t, err, service.ErrInquiryNotFound)
}

func TestInquiryService_List(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		testutil.CreateTestInquiry(t, f.db, nil, at(4, 8+i, 0))
	}

	page, err := f.inquirySvc.List(ctx, 1, 2, nil, repository.DefaultSortConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	items, ok := page.Data.([]domain.InquiryDTO)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestInquiryService_Stats(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	ctx := context.Background()

	empty, err := f.inquirySvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, 0.0, empty.ConversionRate)

	manager := testutil.CreateTestUser(t, f.db, "anna", domain.UserTypeManager)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusSuccess, ptr(domain.GradeA), ptr(domain.GradeA), true)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusFailed, ptr(domain.GradeB), ptr(domain.GradeC), false)
	testutil.CreateTestInquiry(t, f.db, nil, at(6, 9, 0))

	stats, err := f.inquirySvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Success)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.NewCustomers)
	assert.Equal(t, 33.33, stats.ConversionRate)
}

func TestInquiryService_Delete(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()

	pending := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))
	require.NoError(t, f.inquirySvc.Delete(ctx, pending.ID))
	assert.ErrorIs(t, f.inquirySvc.Delete(ctx, pending.ID), service.ErrInquiryNotFound)

	quoted := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))
	_, err := f.kpiSvc.Quote(ctx, quoted.ID, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, f.inquirySvc.Delete(ctx, quoted.ID), service.ErrInquiryNotDeletable)
}

func TestInquiryService_Attachments(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	_, _, err := f.inquirySvc.DownloadAttachment(ctx, inq.ID)
	assert.ErrorIs(t, err, service.ErrAttachmentNotFound)

	dto, err := f.inquirySvc.UploadAttachment(ctx, inq.ID, "spec.txt", "text/plain", strings.NewReader("sixteen bytes!!!"))
	require.NoError(t, err)
	assert.Equal(t, "spec.txt", dto.AttachmentName)

	rc, name, err := f.inquirySvc.DownloadAttachment(ctx, inq.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "spec.txt", name)
	assert.Equal(t, "sixteen bytes!!!", string(body))

	// the fixture limits uploads to 16 bytes
	_, err = f.inquirySvc.UploadAttachment(ctx, inq.ID, "big.bin", "application/octet-stream", bytes.NewReader(make([]byte, 17)))
	assert.ErrorIs(t, err, service.ErrAttachmentTooLarge)

	// the previous attachment survives a rejected upload
	rc, name, err = f.inquirySvc.DownloadAttachment(ctx, inq.ID)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "spec.txt", name)

	// text may be cleared once an attachment exists
	cleared, err := f.inquirySvc.Update(ctx, inq.ID, &domain.UpdateInquiryRequest{Text: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.Text)
}
