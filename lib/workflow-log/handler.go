package workflowloghandler

import (
	"fmt"

	"pm-tools-backend/db"
	workflowlogstore "pm-tools-backend/lib/workflow-log/store"
	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// AuditApproval пишет строку журнала по операции над этапом согласования.
	// Вызывается в той же транзакции, что и сама операция: ошибка записи
	// откатывает всю транзакцию.
	AuditApproval(rec dbmodels.Approval, actorID string, action models.WorkflowAction) error
	ListByRequest(orgID, requestID string) ([]requestapimodels.WorkflowLogView, error)
	List(orgID string, filter requestapimodels.WorkflowLogFilter) (list []requestapimodels.WorkflowLogView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: workflowlogstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: workflowlogstore.NewInstance(tx),
	}
}

type impl struct {
	store workflowlogstore.Provider
}

func (i impl) AuditApproval(rec dbmodels.Approval, actorID string, action models.WorkflowAction) error {
	if actorID == "" {
		// журнал обязан оставаться полным, строка пишется без автора
		log.
			WithField("org_id", rec.OrgID).
			WithField("approval_id", rec.ID).
			Warn("запись журнала без инициатора операции")
	}
	entry := dbmodels.WorkflowLog{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: rec.OrgID,
		},
		EntityType: models.WorkflowEntityApproval,
		EntityID:   rec.ID,
		Action:     action,
		Status:     string(rec.Status),
		UserID:     actorID,
		Details:    approvalDetails(rec, action),
	}
	_, err := i.store.Create(entry)
	if err != nil {
		log.
			WithField("org_id", rec.OrgID).
			WithField("approval_id", rec.ID).
			WithError(err).
			Error("ошибка добавления записи в журнал операций")
		return err
	}
	return nil
}

func (i impl) ListByRequest(orgID, requestID string) ([]requestapimodels.WorkflowLogView, error) {
	list, err := i.store.ListByRequest(orgID, requestID)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.WorkflowLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.WorkflowLogConvert(rec))
	}
	return result, nil
}

func (i impl) List(orgID string, filter requestapimodels.WorkflowLogFilter) (list []requestapimodels.WorkflowLogView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]requestapimodels.WorkflowLogView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.WorkflowLogConvert(rec))
	}
	return result, rowCount, nil
}

func approvalDetails(rec dbmodels.Approval, action models.WorkflowAction) string {
	switch action {
	case models.WorkflowActionCreated:
		return fmt.Sprintf("Создан этап %v согласования заявки %v", rec.StepOrder, rec.RequestID)
	case models.WorkflowActionDeleted:
		return fmt.Sprintf("Удален этап %v согласования заявки %v", rec.StepOrder, rec.RequestID)
	default:
		return fmt.Sprintf("Этап %v согласования заявки %v: %v", rec.StepOrder, rec.RequestID, rec.Status.ToHuman())
	}
}
