package orgusersstore

import (
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Справочник сотрудников ведет внешний сервис, движку согласования
// нужно только чтение.
type Provider interface {
	GetByID(userID string) (rec *dbmodels.OrgUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(userID string) (*dbmodels.OrgUser, error) {
	rec := dbmodels.OrgUser{}
	err := i.db.
		Where("id = ?", userID).
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
