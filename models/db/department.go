package dbmodels

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Department struct {
	BaseOrgModel
	ParentID string `gorm:"type:varchar(36);index"`
	Name     string `gorm:"type:varchar(255)"`
}

func (d *Department) AfterDelete(tx *gorm.DB) (err error) {
	if d.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("department_id = ?", d.ID).Delete(&ResourceRequest{})
	tx.Clauses(clause.Returning{}).Where("parent_id = ?", d.ID).Delete(&Department{})
	return
}

func (d *Department) Validate() error {
	if err := d.BaseOrgModel.Validate(); err != nil {
		return err
	}
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
