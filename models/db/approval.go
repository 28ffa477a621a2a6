package dbmodels

import (
	"time"

	"pm-tools-backend/models"
)

type Approval struct {
	BaseOrgModel
	RequestID      string `gorm:"type:varchar(36);uniqueIndex:idx_request_step,priority:1"`
	StepOrder      int    `gorm:"uniqueIndex:idx_request_step,priority:2"`
	DepartmentID   string `gorm:"type:varchar(36)"`
	Department     *Department
	Status         models.ApprovalStatus `gorm:"type:varchar(50)"`
	ApprovedBy     string                `gorm:"type:varchar(36)"`
	ApprovedByUser *OrgUser              `gorm:"foreignKey:ApprovedBy"`
	ApprovedAt     *time.Time
	CheckedBy      string `gorm:"type:varchar(36)"`
	Remarks        string
	FinalStep      bool
}
