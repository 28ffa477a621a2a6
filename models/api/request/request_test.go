package requestapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestCreateDataValidate(t *testing.T) {
	validData := func() RequestCreateData {
		return RequestCreateData{
			RequestData: RequestData{
				Title:       "Заявка на материалы",
				MaterialIDs: []string{"mat-1"},
			},
			ApprovalChainData: ApprovalChainData{
				ApprovalChain: []ChainStepData{
					{StepOrder: 1, DepartmentID: "dep-1"},
					{StepOrder: 2, DepartmentID: "dep-2"},
				},
			},
		}
	}

	t.Run("корректные данные", func(t *testing.T) {
		require.Nil(t, validData().Validate())
	})

	t.Run("без названия", func(t *testing.T) {
		data := validData()
		data.Title = ""
		require.NotNil(t, data.Validate())
	})

	t.Run("без ресурсов", func(t *testing.T) {
		data := validData()
		data.MaterialIDs = nil
		require.NotNil(t, data.Validate())
	})

	t.Run("этап без подразделения", func(t *testing.T) {
		data := validData()
		data.ApprovalChain[1].DepartmentID = ""
		require.NotNil(t, data.Validate())
	})

	t.Run("повтор подразделения в цепочке", func(t *testing.T) {
		data := validData()
		data.ApprovalChain[1].DepartmentID = data.ApprovalChain[0].DepartmentID
		require.NotNil(t, data.Validate())
	})
}

func TestApprovalDecisionValidateReject(t *testing.T) {
	require.NotNil(t, ApprovalDecision{}.ValidateReject())
	require.Nil(t, ApprovalDecision{Remarks: "нет обоснования"}.ValidateReject())
}
