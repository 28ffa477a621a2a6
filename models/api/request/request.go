package requestapimodels

import (
	"time"

	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
)

type RequestData struct {
	DepartmentID string   `json:"department_id"` // Подразделение-инициатор
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	LaborIDs     []string `json:"labor_ids"`
	MaterialIDs  []string `json:"material_ids"`
	EquipmentIDs []string `json:"equipment_ids"`
}

func (r RequestData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название заявки")
	}
	if len(r.LaborIDs)+len(r.MaterialIDs)+len(r.EquipmentIDs) == 0 {
		return errors.New("в заявке не указаны запрашиваемые ресурсы")
	}
	return nil
}

type RequestCreateData struct {
	RequestData
	ApprovalChainData
}

func (r RequestCreateData) Validate() error {
	if err := r.RequestData.Validate(); err != nil {
		return err
	}
	return r.ApprovalChainData.Validate()
}

type RequestEditData struct {
	RequestData
}

type RequestFilter struct {
	apimodels.Pagination
	Status       models.RequestStatus `json:"status"`
	DepartmentID string               `json:"department_id"`
	AuthorID     string               `json:"author_id"`
	Search       string               `json:"search"` // Поиск по названию
}

type RequestView struct {
	RequestData
	ID              string               `json:"id"`
	AuthorID        string               `json:"author_id"`
	AuthorName      string               `json:"author_name"`
	DepartmentName  string               `json:"department_name"`
	Status          models.RequestStatus `json:"status"`
	StatusName      string               `json:"status_name"`
	LaborCount      int                  `json:"labor_count"`
	MaterialCount   int                  `json:"material_count"`
	EquipmentCount  int                  `json:"equipment_count"`
	ApprovalChain   []ChainStepData      `json:"approval_chain"`
	Approvals       []ApprovalView       `json:"approvals,omitempty"`
	CurrentApproval *ApprovalView        `json:"current_approval,omitempty"` // Активный этап согласования
	CreatedAt       time.Time            `json:"created_at"`
}

func RequestConvert(rec dbmodels.ResourceRequest) RequestView {
	departmentID := ""
	if rec.DepartmentID != nil {
		departmentID = *rec.DepartmentID
	}
	view := RequestView{
		RequestData: RequestData{
			DepartmentID: departmentID,
			Title:        rec.Title,
			Description:  rec.Description,
			LaborIDs:     rec.LaborIDs,
			MaterialIDs:  rec.MaterialIDs,
			EquipmentIDs: rec.EquipmentIDs,
		},
		ID:             rec.ID,
		AuthorID:       rec.AuthorID,
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		LaborCount:     rec.LaborCount,
		MaterialCount:  rec.MaterialCount,
		EquipmentCount: rec.EquipmentCount,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Author != nil {
		view.AuthorName = rec.Author.GetFullName()
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	for _, step := range rec.ApprovalChain {
		view.ApprovalChain = append(view.ApprovalChain, ChainStepData{
			StepOrder:    step.StepOrder,
			DepartmentID: step.DepartmentID,
		})
	}
	for _, approval := range rec.Approvals {
		view.Approvals = append(view.Approvals, ApprovalConvert(approval))
	}
	if _, current := rec.GetCurrentApproval(); current != nil {
		currentView := ApprovalConvert(*current)
		view.CurrentApproval = &currentView
	}
	return view
}
