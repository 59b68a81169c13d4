package mapper

import (
	"time"

	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
)

const timestampFormat = "2006-01-02T15:04:05Z"

// DateFormat is the layout of date-only query parameters and report ranges
const DateFormat = "2006-01-02"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func hoursPtr(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	h := kpi.Round(d.Hours(), 2)
	return &h
}

// ToInquiryDTO converts Inquiry to InquiryDTO
func ToInquiryDTO(inq *domain.Inquiry) domain.InquiryDTO {
	return domain.InquiryDTO{
		ID:                  inq.ID,
		Client:              inq.Client,
		Text:                inq.Text,
		Comment:             inq.Comment,
		AttachmentName:      inq.AttachmentName,
		SalesManagerID:      inq.SalesManagerID,
		IsNewCustomer:       inq.IsNewCustomer,
		Status:              inq.Status,
		QuotedAt:            formatTimePtr(inq.QuotedAt),
		SuccessAt:           formatTimePtr(inq.SuccessAt),
		FailedAt:            formatTimePtr(inq.FailedAt),
		QuoteTimeHours:      hoursPtr(inq.QuoteTime),
		ResolutionTimeHours: hoursPtr(inq.ResolutionTime),
		QuoteGrade:          inq.QuoteGrade,
		CompletionGrade:     inq.CompletionGrade,
		AutoCompletion:      inq.AutoCompletion,
		IsLocked:            inq.IsLocked,
		CreatedAt:           formatTime(inq.CreatedAt),
		UpdatedAt:           formatTime(inq.UpdatedAt),
	}
}

func ToInquiryDTOs(inquiries []domain.Inquiry) []domain.InquiryDTO {
	dtos := make([]domain.InquiryDTO, len(inquiries))
	for i := range inquiries {
		dtos[i] = ToInquiryDTO(&inquiries[i])
	}
	return dtos
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName(),
		UserType:  user.UserType,
		IsActive:  user.IsActive,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

// ToKPIWeightsDTO converts the stored weights. A nil row maps to the defaults.
func ToKPIWeightsDTO(w *domain.KPIWeights) domain.KPIWeightsDTO {
	isDefault := w == nil
	if isDefault {
		def := domain.DefaultKPIWeights()
		w = &def
	}
	dto := domain.KPIWeightsDTO{
		ResponseTimeWeight:   w.ResponseTime,
		FollowUpWeight:       w.FollowUp,
		ConversionRateWeight: w.ConversionRate,
		NewCustomerWeight:    w.NewCustomer,
		TotalWeight:          kpi.Round(kpi.WeightsFromModel(*w).Sum(), 2),
		IsDefault:            isDefault,
	}
	if !w.UpdatedAt.IsZero() {
		dto.UpdatedAt = formatTime(w.UpdatedAt)
	}
	return dto
}

// ToPerformanceTargetDTO converts PerformanceTarget to PerformanceTargetDTO
func ToPerformanceTargetDTO(t *domain.PerformanceTarget) domain.PerformanceTargetDTO {
	return domain.PerformanceTargetDTO{
		ID:                 t.ID,
		MinInquiries:       t.MinInquiries,
		MaxInquiries:       t.MaxInquiries,
		ExcellentThreshold: t.ExcellentThreshold,
		IsActive:           t.IsActive,
		VolumeDisplay:      t.VolumeDisplay(),
	}
}

func ToPerformanceTargetDTOs(targets []domain.PerformanceTarget) []domain.PerformanceTargetDTO {
	dtos := make([]domain.PerformanceTargetDTO, len(targets))
	for i := range targets {
		dtos[i] = ToPerformanceTargetDTO(&targets[i])
	}
	return dtos
}

// FormatDate renders the calendar day of t
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
