package approvalhandler

import (
	orgusersstore "pm-tools-backend/lib/org/users/store"
	dbmodels "pm-tools-backend/models/db"
)

// Authorizer решает, может ли сотрудник принять решение по этапу.
// Движок согласования сам ролевую модель не реализует.
type Authorizer interface {
	CanActOnApproval(actorID string, rec dbmodels.Approval) (bool, error)
}

// departmentAuthorizer - проверка по справочнику сотрудников: решение
// принимает активный сотрудник подразделения этапа либо администратор
// организации.
type departmentAuthorizer struct {
	usersStore orgusersstore.Provider
}

func (a departmentAuthorizer) CanActOnApproval(actorID string, rec dbmodels.Approval) (bool, error) {
	if actorID == "" {
		return false, nil
	}
	user, err := a.usersStore.GetByID(actorID)
	if err != nil {
		return false, err
	}
	if user == nil || !user.IsActive || user.OrgID != rec.OrgID {
		return false, nil
	}
	if user.Role.IsOrgAdmin() {
		return true, nil
	}
	return user.DepartmentID == rec.DepartmentID, nil
}
