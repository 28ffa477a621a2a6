package approvalhandler

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	requeststore "pm-tools-backend/lib/request/store"
	workflowlogstore "pm-tools-backend/lib/workflow-log/store"
	"pm-tools-backend/models"
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
		&dbmodels.Organization{},
		&dbmodels.OrgUser{},
		&dbmodels.Department{},
		&dbmodels.ResourceRequest{},
		&dbmodels.Approval{},
		&dbmodels.WorkflowLog{},
	)
	require.Nil(t, err)
	return conn
}

func createOrg(t *testing.T, conn *gorm.DB) string {
	t.Helper()
	rec := dbmodels.Organization{
		Name:     "Тестовая организация",
		IsActive: true,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec.ID
}

func createDepartment(t *testing.T, conn *gorm.DB, orgID, name string) string {
	t.Helper()
	rec := dbmodels.Department{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		Name: name,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec.ID
}

func createUser(t *testing.T, conn *gorm.DB, orgID, departmentID string, role models.UserRole, isActive bool) string {
	t.Helper()
	rec := dbmodels.OrgUser{
		FirstName:    "Иван",
		LastName:     "Петров",
		IsActive:     isActive,
		OrgID:        orgID,
		DepartmentID: departmentID,
		Role:         role,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec.ID
}

func createRequestWithChain(t *testing.T, conn *gorm.DB, orgID, authorID string, departmentIDs ...string) *dbmodels.ResourceRequest {
	t.Helper()
	rec := dbmodels.ResourceRequest{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		AuthorID:   authorID,
		Title:      "Заявка на материалы",
		Status:     models.RequestStatusPending,
		LaborCount: 1,
	}
	for idx, departmentID := range departmentIDs {
		rec.ApprovalChain = append(rec.ApprovalChain, dbmodels.ChainStep{
			StepOrder:    idx + 1,
			DepartmentID: departmentID,
		})
	}
	store := requeststore.NewInstance(conn)
	id, err := store.Create(rec)
	require.Nil(t, err)
	rec.ID = id

	err = NewHandlerWithTx(conn).CreateChain(orgID, authorID, &rec)
	require.Nil(t, err)

	result, err := store.GetByID(orgID, id)
	require.Nil(t, err)
	require.NotNil(t, result)
	return result
}

func TestCreateChain(t *testing.T) {
	conn := setupTestDB(t)
	orgID := createOrg(t, conn)
	department1ID := createDepartment(t, conn, orgID, "ПТО")
	department2ID := createDepartment(t, conn, orgID, "Снабжение")
	authorID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)

	t.Run("первый этап открывается при создании заявки", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)
		require.Len(t, rec.Approvals, 1)
		require.Equal(t, 1, rec.Approvals[0].StepOrder)
		require.Equal(t, department1ID, rec.Approvals[0].DepartmentID)
		require.Equal(t, models.ApprovalStatusPending, rec.Approvals[0].Status)
		require.False(t, rec.Approvals[0].FinalStep)

		logList, err := workflowlogstore.NewInstance(conn).ListByRequest(orgID, rec.ID)
		require.Nil(t, err)
		require.Len(t, logList, 1)
		require.Equal(t, models.WorkflowActionCreated, logList[0].Action)
	})

	t.Run("единственный этап сразу помечается последним", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department2ID)
		require.Len(t, rec.Approvals, 1)
		require.True(t, rec.Approvals[0].FinalStep)
	})

	t.Run("пустая цепочка не допускается", func(t *testing.T) {
		rec := dbmodels.ResourceRequest{
			BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
			AuthorID:     authorID,
			Title:        "Заявка без цепочки",
			Status:       models.RequestStatusPending,
		}
		id, err := requeststore.NewInstance(conn).Create(rec)
		require.Nil(t, err)
		rec.ID = id

		err = NewHandlerWithTx(conn).CreateChain(orgID, authorID, &rec)
		require.ErrorIs(t, err, models.ErrChainResolution)
	})

	t.Run("неизвестное подразделение в цепочке", func(t *testing.T) {
		rec := dbmodels.ResourceRequest{
			BaseOrgModel:  dbmodels.BaseOrgModel{OrgID: orgID},
			AuthorID:      authorID,
			Title:         "Заявка с неизвестным подразделением",
			Status:        models.RequestStatusPending,
			ApprovalChain: dbmodels.ApprovalChain{{StepOrder: 1, DepartmentID: "не-существует"}},
		}
		id, err := requeststore.NewInstance(conn).Create(rec)
		require.Nil(t, err)
		rec.ID = id

		err = NewHandlerWithTx(conn).CreateChain(orgID, authorID, &rec)
		require.ErrorIs(t, err, models.ErrChainResolution)
	})
}

func TestTransition(t *testing.T) {
	conn := setupTestDB(t)
	orgID := createOrg(t, conn)
	department1ID := createDepartment(t, conn, orgID, "ПТО")
	department2ID := createDepartment(t, conn, orgID, "Снабжение")
	authorID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)
	approver1ID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)
	approver2ID := createUser(t, conn, orgID, department2ID, models.OrgUserRole, true)

	engine := NewHandlerWithTx(conn)

	t.Run("согласование открывает следующий этап", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		result, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusApproved, result.Approval.Status)
		require.Equal(t, approver1ID, result.Approval.ApprovedBy)
		require.NotNil(t, result.Approval.ApprovedAt)
		require.Equal(t, models.RequestStatusInProgress, result.Request.Status)
		require.Len(t, result.Request.Approvals, 2)
		require.Equal(t, models.ApprovalStatusPending, result.Request.Approvals[1].Status)
		require.Equal(t, department2ID, result.Request.Approvals[1].DepartmentID)
		require.True(t, result.Request.Approvals[1].FinalStep)
	})

	t.Run("согласование последнего этапа завершает заявку", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		result, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)

		lastApprovalID := result.Request.Approvals[1].ID
		result, err = engine.Transition(orgID, lastApprovalID, approver2ID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusCompleted, result.Request.Status)

		logList, err := workflowlogstore.NewInstance(conn).ListByRequest(orgID, rec.ID)
		require.Nil(t, err)
		// создание двух этапов и два решения
		require.Len(t, logList, 4)
	})

	t.Run("отклонение останавливает цепочку", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		result, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusRejected, "нет обоснования")
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusRejected, result.Approval.Status)
		require.Equal(t, "нет обоснования", result.Approval.Remarks)
		require.Equal(t, models.RequestStatusRejected, result.Request.Status)
		// следующий этап не открывается
		require.Len(t, result.Request.Approvals, 1)
	})

	t.Run("повторное решение по этапу не допускается", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		_, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)

		logStore := workflowlogstore.NewInstance(conn)
		logBefore, err := logStore.ListByRequest(orgID, rec.ID)
		require.Nil(t, err)

		_, err = engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusRejected, "передумал")
		require.ErrorIs(t, err, models.ErrInvalidTransition)

		// отказ не оставляет следов в журнале
		logAfter, err := logStore.ListByRequest(orgID, rec.ID)
		require.Nil(t, err)
		require.Len(t, logAfter, len(logBefore))
	})

	t.Run("в цепочке не более одного активного этапа", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		_, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)

		var pendingCount int64
		require.Nil(t, conn.Model(&dbmodels.Approval{}).
			Where("request_id = ?", rec.ID).
			Where("status = ?", models.ApprovalStatusPending).
			Count(&pendingCount).Error)
		require.EqualValues(t, 1, pendingCount)
	})

	t.Run("решение принимает только сотрудник подразделения этапа", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		_, err := engine.Transition(orgID, rec.Approvals[0].ID, approver2ID, models.ApprovalStatusApproved, "")
		require.ErrorIs(t, err, models.ErrApprovalNotAllowed)

		_, err = engine.Transition(orgID, rec.Approvals[0].ID, "", models.ApprovalStatusApproved, "")
		require.ErrorIs(t, err, models.ErrApprovalNotAllowed)
	})

	t.Run("администратор организации может решать за любое подразделение", func(t *testing.T) {
		adminID := createUser(t, conn, orgID, "", models.OrgAdminRole, true)
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)

		result, err := engine.Transition(orgID, rec.Approvals[0].ID, adminID, models.ApprovalStatusApproved, "")
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusApproved, result.Approval.Status)
	})

	t.Run("неактивный сотрудник не принимает решение", func(t *testing.T) {
		firedID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, false)
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID)

		_, err := engine.Transition(orgID, rec.Approvals[0].ID, firedID, models.ApprovalStatusApproved, "")
		require.ErrorIs(t, err, models.ErrApprovalNotAllowed)
	})

	t.Run("этап чужой организации недоступен", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID)

		otherOrgID := createOrg(t, conn)
		_, err := engine.Transition(otherOrgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
		require.ErrorIs(t, err, models.ErrRecordNotFound)
	})

	t.Run("недопустимое значение решения", func(t *testing.T) {
		rec := createRequestWithChain(t, conn, orgID, authorID, department1ID)

		_, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusPending, "")
		require.ErrorIs(t, err, models.ErrInvalidTransition)
	})
}

func TestTransitionConcurrent(t *testing.T) {
	conn := setupTestDB(t)
	orgID := createOrg(t, conn)
	department1ID := createDepartment(t, conn, orgID, "ПТО")
	department2ID := createDepartment(t, conn, orgID, "Снабжение")
	authorID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)
	approver1ID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)
	approver2ID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)

	engine := NewHandlerWithTx(conn)
	rec := createRequestWithChain(t, conn, orgID, authorID, department1ID, department2ID)
	approvalID := rec.Approvals[0].ID

	errs := make([]error, 2)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = engine.Transition(orgID, approvalID, approver1ID, models.ApprovalStatusApproved, "")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = engine.Transition(orgID, approvalID, approver2ID, models.ApprovalStatusRejected, "дубль")
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		isExpected := errors.Is(err, models.ErrConcurrentModification) || errors.Is(err, models.ErrInvalidTransition)
		require.True(t, isExpected, "неожиданная ошибка: %v", err)
	}
	require.Equal(t, 1, succeeded)

	// по этапу зафиксировано ровно одно решение
	var approvals []dbmodels.Approval
	require.Nil(t, conn.Where("request_id = ?", rec.ID).Where("step_order = ?", 1).Find(&approvals).Error)
	require.Len(t, approvals, 1)
	require.True(t, approvals[0].Status.IsDecision())
}

func TestTransitionAtomicity(t *testing.T) {
	conn := setupTestDB(t)
	orgID := createOrg(t, conn)
	department1ID := createDepartment(t, conn, orgID, "ПТО")
	authorID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)
	approver1ID := createUser(t, conn, orgID, department1ID, models.OrgUserRole, true)

	engine := NewHandlerWithTx(conn)
	rec := createRequestWithChain(t, conn, orgID, authorID, department1ID)

	// отказ журнала операций откатывает решение целиком
	require.Nil(t, conn.Migrator().DropTable(&dbmodels.WorkflowLog{}))

	_, err := engine.Transition(orgID, rec.Approvals[0].ID, approver1ID, models.ApprovalStatusApproved, "")
	require.NotNil(t, err)

	result, err := requeststore.NewInstance(conn).GetByID(orgID, rec.ID)
	require.Nil(t, err)
	require.Equal(t, models.RequestStatusPending, result.Status)
	require.Len(t, result.Approvals, 1)
	require.Equal(t, models.ApprovalStatusPending, result.Approvals[0].Status)
}
