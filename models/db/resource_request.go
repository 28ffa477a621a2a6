package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"pm-tools-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ChainStep - один шаг согласования заявки. Цепочка фиксируется при создании
// заявки и далее не пересчитывается.
type ChainStep struct {
	StepOrder    int    `json:"step_order"`    // Порядок шага (с 1)
	DepartmentID string `json:"department_id"` // Ответственное подразделение
}

type ApprovalChain []ChainStep

func (c ApprovalChain) Value() (driver.Value, error) {
	valueString, err := json.Marshal(c)
	return string(valueString), err
}

func (c *ApprovalChain) Scan(value any) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, c)
	case string:
		return json.Unmarshal([]byte(data), c)
	}
	return errors.Errorf("неподдерживаемый тип значения цепочки: %T", value)
}

type ResourceRequest struct {
	BaseOrgModel
	AuthorID       string
	Author         *OrgUser `gorm:"foreignKey:AuthorID"`
	DepartmentID   *string  `gorm:"type:varchar(36)"`
	Department     *Department
	Title          string `gorm:"type:varchar(255)"`
	Description    string
	Status         models.RequestStatus `gorm:"type:varchar(50)"`
	LaborIDs       pq.StringArray       `gorm:"type:text[]"`
	MaterialIDs    pq.StringArray       `gorm:"type:text[]"`
	EquipmentIDs   pq.StringArray       `gorm:"type:text[]"`
	LaborCount     int
	MaterialCount  int
	EquipmentCount int
	ApprovalChain  ApprovalChain `gorm:"type:jsonb"`
	Approvals      []Approval    `gorm:"foreignKey:RequestID"`
}

func (r *ResourceRequest) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	// журнал операций не удаляется вместе с заявкой
	tx.Where("request_id = ?", r.ID).Delete(&Approval{})
	return
}

// GetCurrentApproval возвращает активный этап согласования заявки
// и признак того, что этот этап последний в цепочке.
func (r ResourceRequest) GetCurrentApproval() (isLastStep bool, rec *Approval) {
	for idx := range r.Approvals {
		if r.Approvals[idx].Status == models.ApprovalStatusPending {
			return r.Approvals[idx].FinalStep, &r.Approvals[idx]
		}
	}
	return false, nil
}

// NextDepartment возвращает подразделение шага, следующего за указанным.
func (r ResourceRequest) NextDepartment(stepOrder int) (departmentID string, exist bool) {
	for _, step := range r.ApprovalChain {
		if step.StepOrder == stepOrder+1 {
			return step.DepartmentID, true
		}
	}
	return "", false
}
