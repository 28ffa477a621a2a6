package models

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusRejected   RequestStatus = "REJECTED"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:    "Ожидает согласования",
	RequestStatusInProgress: "На согласовании",
	RequestStatusCompleted:  "Согласована",
	RequestStatusRejected:   "Отклонена",
}

func (r RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[r]; exist {
		return human
	}
	return string(r)
}

// IsTerminal - заявка в конечном статусе, цепочка согласования остановлена
func (r RequestStatus) IsTerminal() bool {
	return r == RequestStatusCompleted || r == RequestStatusRejected
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	ApprovalStatusPending:  "Ожидает решения",
	ApprovalStatusApproved: "Согласовано",
	ApprovalStatusRejected: "Отклонено",
}

func (s ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

type WorkflowEntityType string

const (
	WorkflowEntityProject  WorkflowEntityType = "PROJECT"
	WorkflowEntityTask     WorkflowEntityType = "TASK"
	WorkflowEntityActivity WorkflowEntityType = "ACTIVITY"
	WorkflowEntityApproval WorkflowEntityType = "APPROVAL"
)

type WorkflowAction string

const (
	WorkflowActionCreated WorkflowAction = "CREATED"
	WorkflowActionUpdated WorkflowAction = "UPDATED"
	WorkflowActionDeleted WorkflowAction = "DELETED"
)

var workflowActionHumanName = map[WorkflowAction]string{
	WorkflowActionCreated: "Создание",
	WorkflowActionUpdated: "Изменение",
	WorkflowActionDeleted: "Удаление",
}

func (a WorkflowAction) ToHuman() string {
	if human, exist := workflowActionHumanName[a]; exist {
		return human
	}
	return string(a)
}
