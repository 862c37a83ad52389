package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment status values. WIP -> SUBMITTED -> {APPROVED, REJECTED};
// a rejection returns the assignment to WIP for revision.
const (
	AssignmentStatusWIP       = "WIP"
	AssignmentStatusSubmitted = "SUBMITTED"
	AssignmentStatusApproved  = "APPROVED"
	AssignmentStatusRejected  = "REJECTED"
)

// ErrSpotCountMismatch is returned when the reconciliation arithmetic does not hold
var ErrSpotCountMismatch = errors.New("planned spots must equal missed spots + transmitted spots")

// Assignment represents an analyst's monitoring task for one campaign,
// optionally pinned to a station and monitoring period
type Assignment struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID         string     `json:"campaign" gorm:"not null;index;type:uuid"`
	StationID          *string    `json:"station" gorm:"index;type:uuid"`
	AnalystID          *string    `json:"analyst" gorm:"index;type:uuid"`
	MonitoringPeriodID *string    `json:"monitoring_period" gorm:"index;type:uuid"`
	AssignedAt         time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	DueDate            *time.Time `json:"due_date" gorm:"index"`
	Status             string     `json:"status" gorm:"type:varchar(16);default:'WIP';index"`

	// Reconciliation summary
	PlannedSpots     *int `json:"planned_spots"`
	MissedSpots      *int `json:"missed_spots"`
	TransmittedSpots *int `json:"transmitted_spots"`
	GainSpots        *int `json:"gain_spots"`

	Memo           string  `json:"memo" gorm:"type:text"`
	ManagerComment *string `json:"manager_comment" gorm:"type:text"`

	// Reconciliation hand-off flags
	AnalystReportShared   bool `json:"analyst_report_shared" gorm:"default:false"`
	AuthenticatedAccepted bool `json:"authenticated_accepted" gorm:"default:false"`
	StationReportShared   bool `json:"station_report_shared" gorm:"default:false"`

	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaign         Campaign          `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	Station          *Station          `json:"-" gorm:"foreignKey:StationID;references:ID;constraint:OnDelete:SET NULL"`
	Analyst          *Analyst          `json:"-" gorm:"foreignKey:AnalystID;references:ID;constraint:OnDelete:SET NULL"`
	MonitoringPeriod *MonitoringPeriod `json:"-" gorm:"foreignKey:MonitoringPeriodID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Assignment model
func (Assignment) TableName() string {
	return "assignments"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ValidateSpots enforces planned == missed + transmitted when all three
// counts are present. Partial counts are allowed.
func (a *Assignment) ValidateSpots() error {
	if a.PlannedSpots == nil || a.MissedSpots == nil || a.TransmittedSpots == nil {
		return nil
	}
	if *a.PlannedSpots != *a.MissedSpots+*a.TransmittedSpots {
		return ErrSpotCountMismatch
	}
	return nil
}

// IsOverdue reports whether the assignment is still in progress past its due date
func (a *Assignment) IsOverdue(now time.Time) bool {
	if a.Status != AssignmentStatusWIP || a.DueDate == nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return a.DueDate.Before(today)
}

// CreateAssignmentRequest represents the request to create a single assignment
type CreateAssignmentRequest struct {
	CampaignID         string     `json:"campaign" binding:"required"`
	AnalystID          string     `json:"analyst" binding:"required"`
	StationID          *string    `json:"station"`
	MonitoringPeriodID *string    `json:"monitoring_period"`
	DueDate            *time.Time `json:"due_date"`
	Memo               string     `json:"memo"`
}

// UpdateAssignmentRequest represents a partial update to an assignment.
// Pointer fields distinguish "absent" from zero values for PATCH semantics.
type UpdateAssignmentRequest struct {
	StationID          *string    `json:"station"`
	MonitoringPeriodID *string    `json:"monitoring_period"`
	Status             *string    `json:"status" binding:"omitempty,oneof=WIP SUBMITTED APPROVED REJECTED"`
	DueDate            *time.Time `json:"due_date"`
	PlannedSpots       *int       `json:"planned_spots" binding:"omitempty,gte=0"`
	MissedSpots        *int       `json:"missed_spots" binding:"omitempty,gte=0"`
	TransmittedSpots   *int       `json:"transmitted_spots" binding:"omitempty,gte=0"`
	GainSpots          *int       `json:"gain_spots" binding:"omitempty,gte=0"`
	Memo               *string    `json:"memo"`
	ManagerComment     *string    `json:"manager_comment"`

	AnalystReportShared   *bool `json:"analyst_report_shared"`
	AuthenticatedAccepted *bool `json:"authenticated_accepted"`
	StationReportShared   *bool `json:"station_report_shared"`
}

// BulkCreateAssignmentsRequest creates one assignment per station for a
// single campaign and analyst
type BulkCreateAssignmentsRequest struct {
	CampaignID string     `json:"campaign" binding:"required"`
	AnalystID  string     `json:"analyst" binding:"required"`
	StationIDs []string   `json:"stations" binding:"required,min=1"`
	DueDate    *time.Time `json:"due_date"`
	Memo       string     `json:"memo"`
}

// BulkCreateError reports a per-station failure in a bulk create
type BulkCreateError struct {
	StationID string `json:"station"`
	Error     string `json:"error"`
}

// BulkCreateAssignmentsResponse is the multi-status response body
type BulkCreateAssignmentsResponse struct {
	Created []Assignment      `json:"created"`
	Errors  []BulkCreateError `json:"errors,omitempty"`
}
