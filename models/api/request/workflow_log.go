package requestapimodels

import (
	"time"

	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
	dbmodels "pm-tools-backend/models/db"
)

type WorkflowLogFilter struct {
	apimodels.Pagination
	EntityType models.WorkflowEntityType `json:"entity_type"`
	EntityID   string                    `json:"entity_id"`
	UserID     string                    `json:"user_id"`
}

type WorkflowLogView struct {
	ID         string                    `json:"id"`
	EntityType models.WorkflowEntityType `json:"entity_type"`
	EntityID   string                    `json:"entity_id"`
	Action     models.WorkflowAction     `json:"action"`
	ActionName string                    `json:"action_name"`
	Status     string                    `json:"status"`
	UserID     string                    `json:"user_id,omitempty"`
	UserName   string                    `json:"user_name,omitempty"`
	Details    string                    `json:"details"`
	Timestamp  time.Time                 `json:"timestamp"`
}

func WorkflowLogConvert(rec dbmodels.WorkflowLog) WorkflowLogView {
	view := WorkflowLogView{
		ID:         rec.ID,
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		Status:     rec.Status,
		UserID:     rec.UserID,
		Details:    rec.Details,
		Timestamp:  rec.CreatedAt,
	}
	if rec.ActorUser != nil {
		view.UserName = rec.ActorUser.GetFullName()
	} else if rec.UserID == "" {
		view.UserName = models.SystemUser
	}
	return view
}
