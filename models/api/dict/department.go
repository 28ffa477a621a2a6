package dictapimodels

import (
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
}

func (d DepartmentData) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

type DepartmentFind struct {
	Name string `json:"name"`
}

type DepartmentView struct {
	DepartmentData
	ID string `json:"id"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		DepartmentData: DepartmentData{
			ParentID: rec.ParentID,
			Name:     rec.Name,
		},
		ID: rec.ID,
	}
}

type DepartmentTreeItem struct {
	DepartmentView
	SubUnits []DepartmentTreeItem `json:"sub_units"`
}
