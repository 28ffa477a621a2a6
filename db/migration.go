package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "pm-tools-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Organization{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Organization")
	}
	if err := DB.AutoMigrate(&dbmodels.OrgUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры OrgUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.ResourceRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ResourceRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Approval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Approval")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowLog")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
