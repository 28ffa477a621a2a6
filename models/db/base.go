package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// идентификатор назначается приложением, а не БД
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type BaseOrgModel struct {
	BaseModel
	OrgID string `gorm:"type:varchar(36);index" json:"org_id"`
}

func (b BaseOrgModel) Validate() error {
	if b.OrgID == "" {
		return errors.New("отсутсвует ссылка на организацию")
	}
	return nil
}
