package xlsexport

import (
	"bytes"
	"testing"
	"time"

	"pm-tools-backend/models"
	requestapimodels "pm-tools-backend/models/api/request"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkflowLog(t *testing.T) {
	handler := impl{}
	list := []requestapimodels.WorkflowLogView{
		{
			ID:         "log-1",
			EntityType: models.WorkflowEntityApproval,
			EntityID:   "approval-1",
			Action:     models.WorkflowActionUpdated,
			ActionName: models.WorkflowActionUpdated.ToHuman(),
			Status:     string(models.ApprovalStatusApproved),
			UserName:   "Иван Петров",
			Details:    "Этап 1 согласования заявки req-1: Согласовано",
			Timestamp:  time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:         "log-2",
			EntityType: models.WorkflowEntityApproval,
			EntityID:   "approval-2",
			Action:     models.WorkflowActionCreated,
			ActionName: models.WorkflowActionCreated.ToHuman(),
			Status:     string(models.ApprovalStatusPending),
			UserName:   models.SystemUser,
			Details:    "Создан этап 2 согласования заявки req-1",
			Timestamp:  time.Date(2026, 8, 1, 10, 31, 0, 0, time.UTC),
		},
	}

	buf, err := handler.ExportWorkflowLog(list)
	require.Nil(t, err)
	require.NotNil(t, buf)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.Nil(t, err)
	defer f.Close()

	rows, err := f.GetRows("Журнал операций")
	require.Nil(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, workflowLogHeaders, rows[0])
	require.Equal(t, "01.08.2026 10:30", rows[1][0])
	require.Equal(t, "Иван Петров", rows[1][5])
	require.Equal(t, models.SystemUser, rows[2][5])
}

func TestExportWorkflowLogEmpty(t *testing.T) {
	handler := impl{}
	buf, err := handler.ExportWorkflowLog(nil)
	require.Nil(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.Nil(t, err)
	defer f.Close()

	rows, err := f.GetRows("Журнал операций")
	require.Nil(t, err)
	require.Len(t, rows, 1)
}
