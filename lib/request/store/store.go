package requeststore

import (
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ResourceRequest) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.ResourceRequest, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	Delete(orgID, id string) error
	List(orgID string, filter requestapimodels.RequestFilter) (list []dbmodels.ResourceRequest, err error)
	ListCount(orgID string, filter requestapimodels.RequestFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ResourceRequest) (id string, err error) {
	err = i.db.
		Omit("Author", "Department", "Approvals").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.ResourceRequest, error) {
	rec := dbmodels.ResourceRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Preload("Author").
		Preload("Department").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
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

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ResourceRequest{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(orgID, id string) error {
	rec := dbmodels.ResourceRequest{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			OrgID:     orgID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error

	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(orgID string, filter requestapimodels.RequestFilter) (list []dbmodels.ResourceRequest, err error) {
	list = []dbmodels.ResourceRequest{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(orgID, filter).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Preload("Author").
		Preload("Department")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(orgID string, filter requestapimodels.RequestFilter) (rowCount int64, err error) {
	err = i.applyFilter(orgID, filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) applyFilter(orgID string, filter requestapimodels.RequestFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.ResourceRequest{}).
		Where("org_id = ?", orgID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		tx = tx.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	return tx
}
