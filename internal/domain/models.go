package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType determines what a user may do in the system
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeManager  UserType = "manager"
	UserTypeAdmin    UserType = "admin"
)

// IsValid checks if the user type is one of the known values
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeCustomer, UserTypeManager, UserTypeAdmin:
		return true
	}
	return false
}

// IsManagerOrAdmin reports whether the type may own inquiries
func (t UserType) IsManagerOrAdmin() bool {
	return t == UserTypeManager || t == UserTypeAdmin
}

// User is an account that can sign in. Managers and admins own inquiries.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	FirstName    string     `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName     string     `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	UserType     UserType   `gorm:"type:varchar(20);not null;column:user_type" json:"userType"`
	IsActive     bool       `gorm:"not null;column:is_active" json:"isActive"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns an id when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns first and last name, or the username if either is missing
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// InquiryStatus is the lifecycle state of an inquiry
type InquiryStatus string

const (
	InquiryStatusPending InquiryStatus = "pending"
	InquiryStatusQuoted  InquiryStatus = "quoted"
	InquiryStatusSuccess InquiryStatus = "success"
	InquiryStatusFailed  InquiryStatus = "failed"
)

// IsValid checks if the status is one of the known values
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusQuoted, InquiryStatusSuccess, InquiryStatusFailed:
		return true
	}
	return false
}

// IsResolved reports whether the status is terminal
func (s InquiryStatus) IsResolved() bool {
	return s == InquiryStatusSuccess || s == InquiryStatusFailed
}

// Grade is a discrete KPI grade
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Inquiry is a customer request handled by a sales manager. The KPI fields
// (timestamps, durations, grades) are written only by the KPI engine.
type Inquiry struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Client         string        `gorm:"type:varchar(255);not null" json:"client"`
	Text           string        `gorm:"type:text" json:"text"`
	Comment        string        `gorm:"type:text" json:"comment"`
	AttachmentPath string        `gorm:"type:varchar(500);column:attachment_path" json:"-"`
	AttachmentName string        `gorm:"type:varchar(255);column:attachment_name" json:"attachmentName,omitempty"`
	SalesManagerID *uuid.UUID    `gorm:"type:uuid;column:sales_manager_id;index" json:"salesManagerId,omitempty"`
	IsNewCustomer  bool          `gorm:"not null;column:is_new_customer" json:"isNewCustomer"`
	Status         InquiryStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	QuotedAt        *time.Time     `gorm:"column:quoted_at" json:"quotedAt,omitempty"`
	SuccessAt       *time.Time     `gorm:"column:success_at" json:"successAt,omitempty"`
	FailedAt        *time.Time     `gorm:"column:failed_at" json:"failedAt,omitempty"`
	QuoteTime       *time.Duration `gorm:"column:quote_time" json:"-"`
	ResolutionTime  *time.Duration `gorm:"column:resolution_time" json:"-"`
	QuoteGrade      *Grade         `gorm:"type:varchar(1);column:quote_grade" json:"quoteGrade,omitempty"`
	CompletionGrade *Grade         `gorm:"type:varchar(1);column:completion_grade" json:"completionGrade,omitempty"`
	AutoCompletion  bool           `gorm:"not null;column:auto_completion" json:"autoCompletion"`
	IsLocked        bool           `gorm:"not null;column:is_locked" json:"isLocked"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns an id and the initial status when none are set
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InquiryStatusPending
	}
	return nil
}

// ResolvedAt returns the resolution timestamp matching the current status
func (i *Inquiry) ResolvedAt() *time.Time {
	switch i.Status {
	case InquiryStatusSuccess:
		return i.SuccessAt
	case InquiryStatusFailed:
		return i.FailedAt
	}
	if i.SuccessAt != nil {
		return i.SuccessAt
	}
	return i.FailedAt
}

// HasAttachment reports whether a file is stored for the inquiry
func (i *Inquiry) HasAttachment() bool {
	return i.AttachmentPath != ""
}

// KPIWeightsID is the fixed primary key of the singleton weights row
const KPIWeightsID = 1

// KPIWeights is the singleton weighting of the four performance metrics.
// Values are percentages and sum to 100.
type KPIWeights struct {
	ID             int        `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ResponseTime   float64    `gorm:"not null;column:response_time_weight" json:"responseTimeWeight"`
	FollowUp       float64    `gorm:"not null;column:follow_up_weight" json:"followUpWeight"`
	ConversionRate float64    `gorm:"not null;column:conversion_rate_weight" json:"conversionRateWeight"`
	NewCustomer    float64    `gorm:"not null;column:new_customer_weight" json:"newCustomerWeight"`
	UpdatedByID    *uuid.UUID `gorm:"type:uuid;column:updated_by_id" json:"updatedById,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updatedAt"`
}

// TableName pins the singleton table name
func (KPIWeights) TableName() string {
	return "kpi_weights"
}

// DefaultKPIWeights is used while no configuration has been stored
func DefaultKPIWeights() KPIWeights {
	return KPIWeights{
		ID:             KPIWeightsID,
		ResponseTime:   25,
		FollowUp:       25,
		ConversionRate: 25,
		NewCustomer:    25,
	}
}

// PerformanceTarget is an inquiry-volume bracket with the performance
// percentage a manager in that bracket must reach to be graded excellent.
type PerformanceTarget struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MinInquiries       int       `gorm:"not null;column:min_inquiries" json:"minInquiries"`
	MaxInquiries       *int      `gorm:"column:max_inquiries" json:"maxInquiries"`
	ExcellentThreshold float64   `gorm:"not null;column:excellent_threshold" json:"excellentThreshold"`
	IsActive           bool      `gorm:"not null;column:is_active;index" json:"isActive"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns an id when none is set
func (t *PerformanceTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// VolumeDisplay renders the bracket range, e.g. "0-25" or "51+"
func (t *PerformanceTarget) VolumeDisplay() string {
	if t.MaxInquiries == nil {
		return fmt.Sprintf("%d+", t.MinInquiries)
	}
	return fmt.Sprintf("%d-%d", t.MinInquiries, *t.MaxInquiries)
}
