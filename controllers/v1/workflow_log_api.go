package apiv1

import (
	"fmt"
	"time"

	"pm-tools-backend/controllers"
	xlsexport "pm-tools-backend/lib/export/xls"
	workflowloghandler "pm-tools-backend/lib/workflow-log"
	"pm-tools-backend/middleware"
	apimodels "pm-tools-backend/models/api"
	requestapimodels "pm-tools-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type workflowLogApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowLogApiRouters(app *fiber.App) {
	controller := workflowLogApiController{}
	app.Route("workflow_log", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
	})
}

// @Summary Список
// @Tags Журнал операций
// @Description Список записей журнала операций с фильтрацией
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	requestapimodels.WorkflowLogFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.WorkflowLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/workflow_log/list [post]
func (c *workflowLogApiController) list(ctx *fiber.Ctx) error {
	var payload requestapimodels.WorkflowLogFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	list, rowCount, err := workflowloghandler.Instance.List(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала операций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Экспорт
// @Tags Журнал операций
// @Description Экспорт журнала операций в xlsx
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	requestapimodels.WorkflowLogFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/workflow_log/export [post]
func (c *workflowLogApiController) export(ctx *fiber.Ctx) error {
	var payload requestapimodels.WorkflowLogFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	list, _, err := workflowloghandler.Instance.List(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала операций")
	}
	buf, err := xlsexport.Instance.ExportWorkflowLog(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка экспорта журнала операций")
	}
	fileName := fmt.Sprintf("workflow_log_%v.xlsx", time.Now().Format("02-01-2006"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
