package requestapimodels

import (
	"time"

	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
)

// ApprovalChainData - упорядоченный список подразделений, которые должны
// согласовать заявку. Порядок задается вызывающей стороной.
type ApprovalChainData struct {
	ApprovalChain []ChainStepData `json:"approval_chain"`
}

func (v ApprovalChainData) Validate() error {
	departmentsMap := map[string]bool{}
	for idx, step := range v.ApprovalChain {
		if step.DepartmentID == "" {
			return errors.Errorf("не указано подразделение на этапе %v", idx+1)
		}
		if departmentsMap[step.DepartmentID] {
			return errors.Errorf("подразделение с этапа %v уже было указано на ранних этапах", idx+1)
		}
		departmentsMap[step.DepartmentID] = true
	}
	return nil
}

type ChainStepData struct {
	StepOrder    int    `json:"step_order"`
	DepartmentID string `json:"department_id"`
}

type ApprovalDecision struct {
	Remarks string `json:"remarks"`
}

func (v ApprovalDecision) ValidateReject() error {
	if v.Remarks == "" {
		return errors.New("отсутсвует комментарий")
	}
	return nil
}

type ApprovalView struct {
	ID             string                `json:"id"`
	RequestID      string                `json:"request_id"`
	StepOrder      int                   `json:"step_order"`
	DepartmentID   string                `json:"department_id"`
	DepartmentName string                `json:"department_name"`
	Status         models.ApprovalStatus `json:"status"`
	StatusName     string                `json:"status_name"`
	ApprovedBy     string                `json:"approved_by,omitempty"`
	ApprovedByName string                `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time            `json:"approved_at,omitempty"`
	CheckedBy      string                `json:"checked_by,omitempty"`
	Remarks        string                `json:"remarks,omitempty"`
	FinalStep      bool                  `json:"final_step"`
}

func ApprovalConvert(rec dbmodels.Approval) ApprovalView {
	view := ApprovalView{
		ID:           rec.ID,
		RequestID:    rec.RequestID,
		StepOrder:    rec.StepOrder,
		DepartmentID: rec.DepartmentID,
		Status:       rec.Status,
		StatusName:   rec.Status.ToHuman(),
		ApprovedBy:   rec.ApprovedBy,
		ApprovedAt:   rec.ApprovedAt,
		CheckedBy:    rec.CheckedBy,
		Remarks:      rec.Remarks,
		FinalStep:    rec.FinalStep,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if rec.ApprovedByUser != nil {
		view.ApprovedByName = rec.ApprovedByUser.GetFullName()
	}
	return view
}

// TransitionResult - состояние этапа и заявки после принятия решения.
type TransitionResult struct {
	Approval ApprovalView `json:"approval"`
	Request  RequestView  `json:"request"`
}
