package approvalstore

import (
	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Approval) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.Approval, err error)
	// DecideIfPending обновляет этап только если решение по нему еще не
	// принято. Возвращает число затронутых строк: 0 означает, что этап
	// успел решить параллельный запрос.
	DecideIfPending(orgID, id string, updMap map[string]interface{}) (rowsAffected int64, err error)
	ListByRequest(orgID, requestID string) (list []dbmodels.Approval, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Approval) (id string, err error) {
	err = i.db.
		Omit("Department", "ApprovedByUser").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Preload("Department").
		Preload("ApprovedByUser").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) DecideIfPending(orgID, id string, updMap map[string]interface{}) (rowsAffected int64, err error) {
	tx := i.db.
		Model(&dbmodels.Approval{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Where("status = ?", models.ApprovalStatusPending).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) ListByRequest(orgID, requestID string) (list []dbmodels.Approval, err error) {
	list = []dbmodels.Approval{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("request_id = ?", requestID).
		Order("step_order ASC").
		Preload("Department").
		Preload("ApprovedByUser").
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
