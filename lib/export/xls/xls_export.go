package xlsexport

import (
	"bytes"

	requestapimodels "pm-tools-backend/models/api/request"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportWorkflowLog(list []requestapimodels.WorkflowLogView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var workflowLogHeaders = []string{"Дата", "Тип объекта", "Объект", "Операция", "Статус", "Инициатор", "Описание"}

func (i impl) ExportWorkflowLog(list []requestapimodels.WorkflowLogView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, workflowLogHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeWorkflowLogData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Журнал операций")
	return f.WriteToBuffer()
}

func writeWorkflowLogData(f *excelize.File, sheet string, list []requestapimodels.WorkflowLogView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(workflowLogHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Дата"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Timestamp.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Тип объекта"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.EntityType)); err != nil {
			return row, err
		}

		// "Объект"
		col++
		if err := writeColumn(f, sheet, col, row, item.EntityID); err != nil {
			return row, err
		}

		// "Операция"
		col++
		if err := writeColumn(f, sheet, col, row, item.ActionName); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status); err != nil {
			return row, err
		}

		// "Инициатор"
		col++
		if err := writeColumn(f, sheet, col, row, item.UserName); err != nil {
			return row, err
		}

		// "Описание"
		col++
		if err := writeColumn(f, sheet, col, row, item.Details); err != nil {
			return row, err
		}
	}
	return row, nil
}
