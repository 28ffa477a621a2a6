package workflowloghandler

import (
	"path/filepath"
	"testing"

	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"
	dbmodels "pm-tools-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	conn, err := gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.Nil(t, err)
	err = conn.AutoMigrate(
		&dbmodels.OrgUser{},
		&dbmodels.Approval{},
		&dbmodels.WorkflowLog{},
	)
	require.Nil(t, err)
	return conn
}

func TestAuditApproval(t *testing.T) {
	conn := setupTestDB(t)
	handler := NewHandlerWithTx(conn)

	user := dbmodels.OrgUser{
		FirstName: "Анна",
		LastName:  "Смирнова",
		IsActive:  true,
		OrgID:     "org-1",
		Role:      models.OrgUserRole,
	}
	require.Nil(t, conn.Create(&user).Error)

	approval := dbmodels.Approval{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: "org-1"},
		RequestID:    "req-1",
		StepOrder:    1,
		DepartmentID: "dep-1",
		Status:       models.ApprovalStatusApproved,
	}
	require.Nil(t, conn.Create(&approval).Error)

	t.Run("запись с инициатором", func(t *testing.T) {
		err := handler.AuditApproval(approval, user.ID, models.WorkflowActionUpdated)
		require.Nil(t, err)

		list, _, err := handler.List("org-1", requestFilter())
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, user.ID, list[0].UserID)
		require.Equal(t, "Анна Смирнова", list[0].UserName)
		require.Equal(t, models.WorkflowEntityApproval, list[0].EntityType)
		require.Equal(t, approval.ID, list[0].EntityID)
		require.NotEmpty(t, list[0].Details)
	})

	t.Run("запись без инициатора не теряется", func(t *testing.T) {
		err := handler.AuditApproval(approval, "", models.WorkflowActionCreated)
		require.Nil(t, err)

		list, rowCount, err := handler.List("org-1", requestFilter())
		require.Nil(t, err)
		require.EqualValues(t, 2, rowCount)
		for _, item := range list {
			if item.Action == models.WorkflowActionCreated {
				require.Empty(t, item.UserID)
				require.Equal(t, models.SystemUser, item.UserName)
			}
		}
	})

	t.Run("отказ хранилища возвращает ошибку", func(t *testing.T) {
		require.Nil(t, conn.Migrator().DropTable(&dbmodels.WorkflowLog{}))
		err := handler.AuditApproval(approval, user.ID, models.WorkflowActionUpdated)
		require.NotNil(t, err)
	})
}

func TestListByRequest(t *testing.T) {
	conn := setupTestDB(t)
	handler := NewHandlerWithTx(conn)

	approval1 := dbmodels.Approval{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: "org-1"},
		RequestID:    "req-1",
		StepOrder:    1,
		DepartmentID: "dep-1",
		Status:       models.ApprovalStatusApproved,
	}
	require.Nil(t, conn.Create(&approval1).Error)
	approval2 := dbmodels.Approval{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: "org-1"},
		RequestID:    "req-2",
		StepOrder:    1,
		DepartmentID: "dep-1",
		Status:       models.ApprovalStatusPending,
	}
	require.Nil(t, conn.Create(&approval2).Error)

	require.Nil(t, handler.AuditApproval(approval1, "", models.WorkflowActionCreated))
	require.Nil(t, handler.AuditApproval(approval1, "", models.WorkflowActionUpdated))
	require.Nil(t, handler.AuditApproval(approval2, "", models.WorkflowActionCreated))

	list, err := handler.ListByRequest("org-1", "req-1")
	require.Nil(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		require.Equal(t, approval1.ID, item.EntityID)
	}

	// журнал чужой организации недоступен
	list, err = handler.ListByRequest("org-2", "req-1")
	require.Nil(t, err)
	require.Empty(t, list)
}

func requestFilter() requestapimodels.WorkflowLogFilter {
	return requestapimodels.WorkflowLogFilter{
		EntityType: models.WorkflowEntityApproval,
	}
}
