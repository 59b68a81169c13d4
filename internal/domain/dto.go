package domain

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceGrade is the outcome of comparing a manager's weighted score
// against the threshold of their volume bracket
type PerformanceGrade string

const (
	PerformanceExcellent     PerformanceGrade = "excellent"
	PerformanceAverage       PerformanceGrade = "average"
	PerformanceNotConfigured PerformanceGrade = "not_configured"
)

// DateRange is an inclusive [From, To] window of calendar days
type DateRange struct {
	From time.Time
	To   time.Time
}

// ManagerInquiryStats holds the aggregate inquiry counters of one manager
// over a date range
type ManagerInquiryStats struct {
	ManagerID        uuid.UUID `json:"managerId"`
	Total            int64     `json:"total"`
	Pending          int64     `json:"pending"`
	Quoted           int64     `json:"quoted"`
	Success          int64     `json:"success"`
	Failed           int64     `json:"failed"`
	NewCustomers     int64     `json:"newCustomers"`
	QuoteGradeA      int64     `json:"quoteGradeA"`
	QuoteGradeB      int64     `json:"quoteGradeB"`
	QuoteGradeC      int64     `json:"quoteGradeC"`
	CompletionGradeA int64     `json:"completionGradeA"`
	CompletionGradeB int64     `json:"completionGradeB"`
	CompletionGradeC int64     `json:"completionGradeC"`
}

// Processed is the number of inquiries that left pending
func (s ManagerInquiryStats) Processed() int64 {
	return s.Total - s.Pending
}

// Completed is the number of inquiries that reached a terminal status
func (s ManagerInquiryStats) Completed() int64 {
	return s.Success + s.Failed
}

// QuotePoints sums the points of all quote grades
func (s ManagerInquiryStats) QuotePoints() int64 {
	return 3*s.QuoteGradeA + 2*s.QuoteGradeB - s.QuoteGradeC
}

// CompletionPoints sums the points of all completion grades
func (s ManagerInquiryStats) CompletionPoints() int64 {
	return 3*s.CompletionGradeA + 2*s.CompletionGradeB - s.CompletionGradeC
}

// InquiryCounts holds inquiry counters across all managers
type InquiryCounts struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Quoted       int64 `json:"quoted"`
	Success      int64 `json:"success"`
	Failed       int64 `json:"failed"`
	NewCustomers int64 `json:"newCustomers"`
}

// Requests

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type CreateInquiryRequest struct {
	Client         string        `json:"client" validate:"required,max=255"`
	Text           string        `json:"text" validate:"required"`
	Comment        string        `json:"comment,omitempty"`
	SalesManagerID *uuid.UUID    `json:"salesManagerId,omitempty"`
	IsNewCustomer  *bool         `json:"isNewCustomer,omitempty"`
	Status         InquiryStatus `json:"status,omitempty" validate:"omitempty,oneof=pending quoted success failed"`
	AutoCompletion bool          `json:"autoCompletion,omitempty"`
	CreatedAt      *time.Time    `json:"createdAt,omitempty"`
	QuotedAt       *time.Time    `json:"quotedAt,omitempty"`
	SuccessAt      *time.Time    `json:"successAt,omitempty"`
	FailedAt       *time.Time    `json:"failedAt,omitempty"`
}

// UpdateInquiryRequest is a partial update; nil fields are left unchanged.
// A status change is routed through the KPI engine.
type UpdateInquiryRequest struct {
	Client         *string        `json:"client,omitempty" validate:"omitempty,min=1,max=255"`
	Text           *string        `json:"text,omitempty"`
	Comment        *string        `json:"comment,omitempty"`
	SalesManagerID *uuid.UUID     `json:"salesManagerId,omitempty"`
	IsNewCustomer  *bool          `json:"isNewCustomer,omitempty"`
	Status         *InquiryStatus `json:"status,omitempty" validate:"omitempty,oneof=pending quoted success failed"`
}

// TransitionRequest carries an optional explicit timestamp for a status change
type TransitionRequest struct {
	At *time.Time `json:"at,omitempty"`
}

type RecalculateRequest struct {
	Force bool `json:"force"`
}

type SetLockRequest struct {
	Locked *bool `json:"locked" validate:"required"`
}

type SetAutoCompletionRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type KPIWeightsRequest struct {
	ResponseTimeWeight   float64 `json:"responseTimeWeight" validate:"gte=0,lte=100"`
	FollowUpWeight       float64 `json:"followUpWeight" validate:"gte=0,lte=100"`
	ConversionRateWeight float64 `json:"conversionRateWeight" validate:"gte=0,lte=100"`
	NewCustomerWeight    float64 `json:"newCustomerWeight" validate:"gte=0,lte=100"`
}

// PerformanceTargetRequest creates or (in bulk, when ID is set) updates a bracket
type PerformanceTargetRequest struct {
	ID                 *uuid.UUID `json:"id,omitempty"`
	MinInquiries       *int       `json:"minInquiries" validate:"required,gte=0"`
	MaxInquiries       *int       `json:"maxInquiries,omitempty" validate:"omitempty,gte=0"`
	ExcellentThreshold *float64   `json:"excellentThreshold" validate:"required,gte=0,lte=100"`
	IsActive           *bool      `json:"isActive,omitempty"`
}

type BulkPerformanceTargetsRequest struct {
	Targets []PerformanceTargetRequest `json:"targets" validate:"required,dive"`
}

// Responses

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName"`
	UserType  UserType  `json:"userType"`
	IsActive  bool      `json:"isActive"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	TokenType   string  `json:"tokenType"`
	ExpiresAt   string  `json:"expiresAt"`
	User        UserDTO `json:"user"`
}

type InquiryDTO struct {
	ID                  uuid.UUID     `json:"id"`
	Client              string        `json:"client"`
	Text                string        `json:"text"`
	Comment             string        `json:"comment,omitempty"`
	AttachmentName      string        `json:"attachmentName,omitempty"`
	SalesManagerID      *uuid.UUID    `json:"salesManagerId,omitempty"`
	IsNewCustomer       bool          `json:"isNewCustomer"`
	Status              InquiryStatus `json:"status"`
	QuotedAt            *string       `json:"quotedAt,omitempty"`
	SuccessAt           *string       `json:"successAt,omitempty"`
	FailedAt            *string       `json:"failedAt,omitempty"`
	QuoteTimeHours      *float64      `json:"quoteTimeHours,omitempty"`
	ResolutionTimeHours *float64      `json:"resolutionTimeHours,omitempty"`
	QuoteGrade          *Grade        `json:"quoteGrade,omitempty"`
	CompletionGrade     *Grade        `json:"completionGrade,omitempty"`
	AutoCompletion      bool          `json:"autoCompletion"`
	IsLocked            bool          `json:"isLocked"`
	CreatedAt           string        `json:"createdAt"`
	UpdatedAt           string        `json:"updatedAt"`
}

type KPIWeightsDTO struct {
	ResponseTimeWeight   float64 `json:"responseTimeWeight"`
	FollowUpWeight       float64 `json:"followUpWeight"`
	ConversionRateWeight float64 `json:"conversionRateWeight"`
	NewCustomerWeight    float64 `json:"newCustomerWeight"`
	TotalWeight          float64 `json:"totalWeight"`
	IsDefault            bool    `json:"isDefault"`
	UpdatedAt            string  `json:"updatedAt,omitempty"`
}

type PerformanceTargetDTO struct {
	ID                 uuid.UUID `json:"id"`
	MinInquiries       int       `json:"minInquiries"`
	MaxInquiries       *int      `json:"maxInquiries"`
	ExcellentThreshold float64   `json:"excellentThreshold"`
	IsActive           bool      `json:"isActive"`
	VolumeDisplay      string    `json:"volumeDisplay"`
}

// PerformanceGradeDTO is the result of grading one manager over a date range
type PerformanceGradeDTO struct {
	ManagerID    uuid.UUID             `json:"managerId"`
	Grade        PerformanceGrade      `json:"grade"`
	Performance  float64               `json:"performance"`
	InquiryCount int64                 `json:"inquiryCount"`
	Bracket      *PerformanceTargetDTO `json:"bracket,omitempty"`
	Threshold    *float64              `json:"threshold,omitempty"`
	DateFrom     string                `json:"dateFrom"`
	DateTo       string                `json:"dateTo"`
}

// ManagerKPIStatisticsDTO is the detailed KPI breakdown for one manager
type ManagerKPIStatisticsDTO struct {
	ManagerID                   uuid.UUID           `json:"managerId"`
	Counts                      ManagerInquiryStats `json:"counts"`
	Processed                   int64               `json:"processed"`
	Completed                   int64               `json:"completed"`
	QuotePoints                 int64               `json:"quotePoints"`
	CompletionPoints            int64               `json:"completionPoints"`
	TotalKPIPoints              int64               `json:"totalKpiPoints"`
	AvgQuotePoints              float64             `json:"avgQuotePoints"`
	AvgCompletionPoints         float64             `json:"avgCompletionPoints"`
	AvgTotalPoints              float64             `json:"avgTotalPoints"`
	ConversionRate              float64             `json:"conversionRate"`
	ProcessingConversionRate    float64             `json:"processingConversionRate"`
	NewCustomerRate             float64             `json:"newCustomerRate"`
	QuoteGradeDistribution      map[Grade]float64   `json:"quoteGradeDistribution"`
	CompletionGradeDistribution map[Grade]float64   `json:"completionGradeDistribution"`
	DateFrom                    string              `json:"dateFrom"`
	DateTo                      string              `json:"dateTo"`
}

// ManagerPerformanceDTO is one row of the KPI dashboard
type ManagerPerformanceDTO struct {
	ManagerID         uuid.UUID        `json:"managerId"`
	ManagerName       string           `json:"managerName"`
	TotalInquiries    int64            `json:"totalInquiries"`
	ResponseTimePct   float64          `json:"responseTimePercentage"`
	FollowUpPct       float64          `json:"followUpPercentage"`
	ConversionRatePct float64          `json:"conversionRatePercentage"`
	NewCustomerPct    float64          `json:"newCustomerPercentage"`
	OverallScore      float64          `json:"overallScore"`
	PerformanceGrade  PerformanceGrade `json:"performanceGrade"`
}

type DashboardDTO struct {
	Weights  KPIWeightsDTO           `json:"weights"`
	Managers []ManagerPerformanceDTO `json:"managers"`
	DateFrom string                  `json:"dateFrom"`
	DateTo   string                  `json:"dateTo"`
}

// InquiryStatsDTO is the status breakdown of all inquiries
type InquiryStatsDTO struct {
	InquiryCounts
	ConversionRate float64 `json:"conversionRate"`
}

// RecalculationResultDTO summarizes a batch KPI recalculation
type RecalculationResultDTO struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
