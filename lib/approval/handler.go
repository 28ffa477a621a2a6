package approvalhandler

import (
	"time"

	"pm-tools-backend/db"
	approvalstore "pm-tools-backend/lib/approval/store"
	departmentstore "pm-tools-backend/lib/dicts/department/store"
	orgusersstore "pm-tools-backend/lib/org/users/store"
	requeststore "pm-tools-backend/lib/request/store"
	workflowloghandler "pm-tools-backend/lib/workflow-log"
	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// CreateChain фиксирует цепочку согласования заявки и открывает первый
	// этап. Вызывается в транзакции создания заявки.
	CreateChain(orgID, actorID string, rec *dbmodels.ResourceRequest) error
	// Transition применяет решение сотрудника к активному этапу. При
	// согласовании последнего этапа заявка переходит в статус "Согласована",
	// при отклонении любого этапа - в статус "Отклонена".
	Transition(orgID, approvalID, actorID string, decision models.ApprovalStatus, remarks string) (requestapimodels.TransitionResult, error)
	ListByRequest(orgID, requestID string) ([]requestapimodels.ApprovalView, error)
	History(orgID, requestID string) ([]requestapimodels.WorkflowLogView, error)
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return newImpl(tx)
}

func newImpl(db *gorm.DB) impl {
	return impl{
		db:              db,
		store:           approvalstore.NewInstance(db),
		requestStore:    requeststore.NewInstance(db),
		departmentStore: departmentstore.NewInstance(db),
		authz: departmentAuthorizer{
			usersStore: orgusersstore.NewInstance(db),
		},
	}
}

type impl struct {
	db              *gorm.DB
	store           approvalstore.Provider
	requestStore    requeststore.Provider
	departmentStore departmentstore.Provider
	authz           Authorizer
}

func (i impl) CreateChain(orgID, actorID string, rec *dbmodels.ResourceRequest) error {
	if len(rec.ApprovalChain) == 0 {
		return errors.Wrap(models.ErrChainResolution, "цепочка согласования пуста")
	}
	seen := map[string]bool{}
	for idx := range rec.ApprovalChain {
		rec.ApprovalChain[idx].StepOrder = idx + 1
		departmentID := rec.ApprovalChain[idx].DepartmentID
		if seen[departmentID] {
			return errors.Wrapf(models.ErrChainResolution, "подразделение %v повторяется в цепочке", departmentID)
		}
		seen[departmentID] = true
		department, err := i.departmentStore.GetByID(orgID, departmentID)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки подразделения этапа")
		}
		if department == nil {
			return errors.Wrapf(models.ErrChainResolution, "подразделение %v не найдено", departmentID)
		}
	}

	first := dbmodels.Approval{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		RequestID:    rec.ID,
		StepOrder:    1,
		DepartmentID: rec.ApprovalChain[0].DepartmentID,
		Status:       models.ApprovalStatusPending,
		FinalStep:    len(rec.ApprovalChain) == 1,
	}
	id, err := i.store.Create(first)
	if err != nil {
		return errors.Wrap(err, "ошибка создания этапа согласования")
	}
	first.ID = id
	return workflowloghandler.NewHandlerWithTx(i.db).
		AuditApproval(first, actorID, models.WorkflowActionCreated)
}

func (i impl) Transition(orgID, approvalID, actorID string, decision models.ApprovalStatus, remarks string) (result requestapimodels.TransitionResult, err error) {
	if !decision.IsDecision() {
		return result, errors.Wrapf(models.ErrInvalidTransition, "недопустимое решение %v", decision)
	}
	rec, err := i.store.GetByID(orgID, approvalID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения этапа согласования")
	}
	if rec == nil {
		return result, models.ErrRecordNotFound
	}
	if rec.Status != models.ApprovalStatusPending {
		return result, models.ErrInvalidTransition
	}
	allowed, err := i.authz.CanActOnApproval(actorID, *rec)
	if err != nil {
		return result, errors.Wrap(err, "ошибка проверки прав на этап согласования")
	}
	if !allowed {
		return result, models.ErrApprovalNotAllowed
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		txStore := approvalstore.NewInstance(tx)
		txRequestStore := requeststore.NewInstance(tx)
		auditor := workflowloghandler.NewHandlerWithTx(tx)

		now := time.Now()
		rowsAffected, err := txStore.DecideIfPending(orgID, rec.ID, map[string]interface{}{
			"status":      decision,
			"approved_by": actorID,
			"approved_at": &now,
			"remarks":     remarks,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения решения по этапу")
		}
		if rowsAffected == 0 {
			return models.ErrConcurrentModification
		}

		updated, err := txStore.GetByID(orgID, rec.ID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения этапа согласования")
		}
		if updated == nil {
			return models.ErrRecordNotFound
		}
		err = auditor.AuditApproval(*updated, actorID, models.WorkflowActionUpdated)
		if err != nil {
			return err
		}

		request, err := txRequestStore.GetByID(orgID, updated.RequestID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения заявки")
		}
		if request == nil {
			return models.ErrRecordNotFound
		}
		// цепочка остановленной заявки не продолжается
		if request.Status.IsTerminal() {
			return models.ErrInvalidTransition
		}

		requestStatus := models.RequestStatusRejected
		if decision == models.ApprovalStatusApproved {
			if updated.FinalStep {
				requestStatus = models.RequestStatusCompleted
			} else {
				err = i.openNextStep(tx, auditor, actorID, *request, *updated)
				if err != nil {
					return err
				}
				requestStatus = models.RequestStatusInProgress
			}
		}
		err = txRequestStore.Update(orgID, request.ID, map[string]interface{}{
			"status": requestStatus,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка изменения статуса заявки")
		}

		request, err = txRequestStore.GetByID(orgID, updated.RequestID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения заявки")
		}
		result = requestapimodels.TransitionResult{
			Approval: requestapimodels.ApprovalConvert(*updated),
			Request:  requestapimodels.RequestConvert(*request),
		}
		return nil
	})
	if err != nil {
		return requestapimodels.TransitionResult{}, err
	}
	log.
		WithField("org_id", orgID).
		WithField("approval_id", approvalID).
		WithField("decision", decision).
		Info("принято решение по этапу согласования")
	return result, nil
}

// openNextStep открывает этап, следующий в цепочке за согласованным.
func (i impl) openNextStep(tx *gorm.DB, auditor workflowloghandler.Provider, actorID string, request dbmodels.ResourceRequest, current dbmodels.Approval) error {
	departmentID, exist := request.NextDepartment(current.StepOrder)
	if !exist {
		return errors.Wrapf(models.ErrChainResolution, "в цепочке заявки %v нет шага %v", request.ID, current.StepOrder+1)
	}
	_, hasAfter := request.NextDepartment(current.StepOrder + 1)
	next := dbmodels.Approval{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: request.OrgID,
		},
		RequestID:    request.ID,
		StepOrder:    current.StepOrder + 1,
		DepartmentID: departmentID,
		Status:       models.ApprovalStatusPending,
		FinalStep:    !hasAfter,
	}
	id, err := approvalstore.NewInstance(tx).Create(next)
	if err != nil {
		return errors.Wrap(err, "ошибка создания этапа согласования")
	}
	next.ID = id
	return auditor.AuditApproval(next, actorID, models.WorkflowActionCreated)
}

func (i impl) ListByRequest(orgID, requestID string) ([]requestapimodels.ApprovalView, error) {
	list, err := i.store.ListByRequest(orgID, requestID)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.ApprovalView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.ApprovalConvert(rec))
	}
	return result, nil
}

func (i impl) History(orgID, requestID string) ([]requestapimodels.WorkflowLogView, error) {
	return workflowloghandler.NewHandlerWithTx(i.db).ListByRequest(orgID, requestID)
}
