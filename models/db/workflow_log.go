package dbmodels

import "pm-tools-backend/models"

// WorkflowLog - неизменяемая запись журнала операций. Строки только
// добавляются, обновление и удаление не предусмотрены.
type WorkflowLog struct {
	BaseOrgModel
	EntityType models.WorkflowEntityType `gorm:"type:varchar(50);index:idx_entity"`
	EntityID   string                    `gorm:"type:varchar(36);index:idx_entity"`
	Action     models.WorkflowAction     `gorm:"type:varchar(50)"`
	Status     string                    `gorm:"type:varchar(50)"`
	UserID     string                    `gorm:"type:varchar(36)"`
	ActorUser  *OrgUser                  `gorm:"foreignKey:UserID"`
	Details    string
}
