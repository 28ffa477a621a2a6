package departmentprovider

import (
	"strings"

	"pm-tools-backend/db"
	"pm-tools-backend/lib/dicts/department/store"
	dictapimodels "pm-tools-backend/models/api/dict"
	dbmodels "pm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(orgID string, request dictapimodels.DepartmentData) (id string, err error)
	Update(orgID, id string, request dictapimodels.DepartmentData) error
	Get(orgID, id string) (item dictapimodels.DepartmentView, err error)
	FindByName(orgID string, request dictapimodels.DepartmentFind) (list []dictapimodels.DepartmentTreeItem, err error)
	Delete(orgID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: store.NewInstance(db.DB),
	}
}

type impl struct {
	store store.Provider
}

func (i impl) Create(orgID string, request dictapimodels.DepartmentData) (id string, err error) {
	logger := log.WithField("org_id", orgID)
	rec := dbmodels.Department{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		ParentID: request.ParentID,
		Name:     request.Name,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("department_name", rec.Name).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(orgID, id string, request dictapimodels.DepartmentData) error {
	logger := log.WithField("org_id", orgID).
		WithField("rec_id", id)
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	err := i.store.Update(orgID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлено подразделение")
	return nil
}

func (i impl) Get(orgID, id string) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.New("подразделение не найдено")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) FindByName(orgID string, request dictapimodels.DepartmentFind) (list []dictapimodels.DepartmentTreeItem, err error) {
	recList, err := i.store.List(orgID)
	if err != nil {
		return nil, err
	}

	tree := []dictapimodels.DepartmentTreeItem{}
	for _, rec := range recList {
		if rec.ParentID != "" {
			continue
		}
		item := dictapimodels.DepartmentTreeItem{
			DepartmentView: dictapimodels.DepartmentConvert(rec),
			SubUnits:       getChildren(rec.ID, recList),
		}
		tree = append(tree, item)
	}

	if request.Name == "" {
		return tree, nil
	}
	result := make([]dictapimodels.DepartmentTreeItem, 0, len(tree))
	searchName := strings.ToLower(request.Name)
	for _, treeItem := range tree {
		found, subUnits := filterTree(searchName, treeItem)
		if found {
			treeItem.SubUnits = subUnits
			result = append(result, treeItem)
		}
	}
	return result, nil
}

func (i impl) Delete(orgID, id string) error {
	logger := log.WithField("org_id", orgID).
		WithField("rec_id", id)
	err := i.store.Delete(orgID, id)
	if err != nil {
		return err
	}
	logger.Info("удалено подразделение")
	return nil
}

func getChildren(rootID string, recList []dbmodels.Department) []dictapimodels.DepartmentTreeItem {
	result := []dictapimodels.DepartmentTreeItem{}
	for _, rec := range recList {
		if rec.ParentID != rootID {
			continue
		}
		item := dictapimodels.DepartmentTreeItem{
			DepartmentView: dictapimodels.DepartmentConvert(rec),
			SubUnits:       getChildren(rec.ID, recList),
		}
		result = append(result, item)
	}
	return result
}

func filterTree(searchName string, item dictapimodels.DepartmentTreeItem) (bool, []dictapimodels.DepartmentTreeItem) {
	foundSubUnits := []dictapimodels.DepartmentTreeItem{}
	for _, subUnit := range item.SubUnits {
		found, foundList := filterTree(searchName, subUnit)
		if found {
			subUnit.SubUnits = foundList
			foundSubUnits = append(foundSubUnits, subUnit)
		}
	}
	if len(foundSubUnits) > 0 {
		return true, foundSubUnits
	}
	if strings.Contains(strings.ToLower(item.Name), searchName) {
		return true, []dictapimodels.DepartmentTreeItem{}
	}
	return false, []dictapimodels.DepartmentTreeItem{}
}
