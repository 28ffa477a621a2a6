package initializers

import (
	"context"

	"pm-tools-backend/config"
	"pm-tools-backend/fiberlog"
	approvalhandler "pm-tools-backend/lib/approval"
	departmentprovider "pm-tools-backend/lib/dicts/department"
	xlsexport "pm-tools-backend/lib/export/xls"
	requesthandler "pm-tools-backend/lib/request"
	workflowloghandler "pm-tools-backend/lib/workflow-log"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(_ context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	departmentprovider.NewHandler()
	workflowloghandler.NewHandler()
	approvalhandler.NewHandler()
	requesthandler.NewHandler()
	xlsexport.NewHandler()
}
