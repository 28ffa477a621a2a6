package dbmodels

import (
	"fmt"
	"strings"

	"pm-tools-backend/models"
)

type OrgUser struct {
	BaseModel
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Email        string `gorm:"type:varchar(255)"`
	PhoneNumber  string `gorm:"type:varchar(15)"`
	IsActive     bool
	OrgID        string `gorm:"type:varchar(36);index"`
	DepartmentID string `gorm:"type:varchar(36);index"`
	Department   *Department
	Role         models.UserRole `gorm:"type:varchar(50)"`
}

func (u OrgUser) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", u.FirstName, u.LastName))
}
