package requesthandler

import (
	"pm-tools-backend/db"
	approvalhandler "pm-tools-backend/lib/approval"
	requeststore "pm-tools-backend/lib/request/store"
	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(orgID, authorID string, data requestapimodels.RequestCreateData) (id string, err error)
	GetByID(orgID, id string) (view *requestapimodels.RequestView, err error)
	Update(orgID, id string, data requestapimodels.RequestEditData) error
	Delete(orgID, id string) error
	List(orgID string, filter requestapimodels.RequestFilter) (list []requestapimodels.RequestView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db:    db.DB,
		store: requeststore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db:    tx,
		store: requeststore.NewInstance(tx),
	}
}

type impl struct {
	db    *gorm.DB
	store requeststore.Provider
}

// Create создает заявку вместе с цепочкой согласования. Заявка и первый
// этап цепочки сохраняются в одной транзакции.
func (i impl) Create(orgID, authorID string, data requestapimodels.RequestCreateData) (id string, err error) {
	err = data.Validate()
	if err != nil {
		return "", err
	}
	rec := dbmodels.ResourceRequest{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		AuthorID:       authorID,
		Title:          data.Title,
		Description:    data.Description,
		Status:         models.RequestStatusPending,
		LaborIDs:       pq.StringArray(data.LaborIDs),
		MaterialIDs:    pq.StringArray(data.MaterialIDs),
		EquipmentIDs:   pq.StringArray(data.EquipmentIDs),
		LaborCount:     len(data.LaborIDs),
		MaterialCount:  len(data.MaterialIDs),
		EquipmentCount: len(data.EquipmentIDs),
	}
	if data.DepartmentID != "" {
		departmentID := data.DepartmentID
		rec.DepartmentID = &departmentID
	}
	// порядок шагов задается позицией в списке
	for idx, step := range data.ApprovalChain {
		rec.ApprovalChain = append(rec.ApprovalChain, dbmodels.ChainStep{
			StepOrder:    idx + 1,
			DepartmentID: step.DepartmentID,
		})
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		recID, err := requeststore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}
		rec.ID = recID
		return approvalhandler.NewHandlerWithTx(tx).CreateChain(orgID, authorID, &rec)
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("org_id", orgID).
		WithField("request_id", rec.ID).
		Info("создана заявка на ресурсы")
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrRecordNotFound
	}
	view := requestapimodels.RequestConvert(*rec)
	return &view, nil
}

// Update изменяет заявку. Заявка на согласовании или в конечном статусе
// изменению не подлежит, статус меняет только движок согласования.
func (i impl) Update(orgID, id string, data requestapimodels.RequestEditData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrRecordNotFound
	}
	if rec.Status != models.RequestStatusPending {
		return models.ErrInvalidTransition
	}
	updMap := map[string]interface{}{
		"title":           data.Title,
		"description":     data.Description,
		"labor_ids":       pq.StringArray(data.LaborIDs),
		"material_ids":    pq.StringArray(data.MaterialIDs),
		"equipment_ids":   pq.StringArray(data.EquipmentIDs),
		"labor_count":     len(data.LaborIDs),
		"material_count":  len(data.MaterialIDs),
		"equipment_count": len(data.EquipmentIDs),
	}
	if data.DepartmentID != "" {
		updMap["department_id"] = data.DepartmentID
	}
	return i.store.Update(orgID, id, updMap)
}

func (i impl) Delete(orgID, id string) error {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrRecordNotFound
	}
	err = i.store.Delete(orgID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления заявки")
	}
	return nil
}

func (i impl) List(orgID string, filter requestapimodels.RequestFilter) (list []requestapimodels.RequestView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]requestapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, rowCount, nil
}
