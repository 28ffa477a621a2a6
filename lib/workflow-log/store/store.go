package workflowlogstore

import (
	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Журнал только пополняется, методов обновления и удаления у хранилища нет.
type Provider interface {
	Create(rec dbmodels.WorkflowLog) (id string, err error)
	ListByEntity(orgID string, entityType models.WorkflowEntityType, entityID string) (list []dbmodels.WorkflowLog, err error)
	ListByRequest(orgID, requestID string) (list []dbmodels.WorkflowLog, err error)
	List(orgID string, filter requestapimodels.WorkflowLogFilter) (list []dbmodels.WorkflowLog, err error)
	ListCount(orgID string, filter requestapimodels.WorkflowLogFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowLog) (id string, err error) {
	err = i.db.
		Omit("ActorUser").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByEntity(orgID string, entityType models.WorkflowEntityType, entityID string) (list []dbmodels.WorkflowLog, err error) {
	list = []dbmodels.WorkflowLog{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Preload("ActorUser").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRequest(orgID, requestID string) (list []dbmodels.WorkflowLog, err error) {
	list = []dbmodels.WorkflowLog{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("entity_type = ?", models.WorkflowEntityApproval).
		Where("entity_id IN (?)",
			i.db.Model(&dbmodels.Approval{}).
				Select("id").
				Where("org_id = ?", orgID).
				Where("request_id = ?", requestID),
		).
		Order("created_at ASC").
		Preload("ActorUser").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) List(orgID string, filter requestapimodels.WorkflowLogFilter) (list []dbmodels.WorkflowLog, err error) {
	list = []dbmodels.WorkflowLog{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(orgID, filter).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Preload("ActorUser")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(orgID string, filter requestapimodels.WorkflowLogFilter) (rowCount int64, err error) {
	err = i.applyFilter(orgID, filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) applyFilter(orgID string, filter requestapimodels.WorkflowLogFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.WorkflowLog{}).
		Where("org_id = ?", orgID)
	if filter.EntityType != "" {
		tx = tx.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		tx = tx.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	return tx
}
