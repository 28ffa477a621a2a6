package apiv1

import (
	approvalhandler "pm-tools-backend/lib/approval"
	"pm-tools-backend/middleware"
	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
	requestapimodels "pm-tools-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

func initResourceRequestApprovalRouters(idRoute fiber.Router, controller *resourceRequestApiController) {
	idRoute.Route("approvals/:approvalId", func(approvalRoute fiber.Router) {
		approvalRoute.Post("approve", controller.approve)
		approvalRoute.Post("reject", controller.reject)
	})
}

// @Summary Согласовать
// @Tags Согласование заявок
// @Description Согласовать активный этап заявки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	requestapimodels.ApprovalDecision	false	"request body"
// @Param   id          		path    string  				    		true    "rec ID"
// @Param   approvalId         	path    string  				    		true    "approval rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/resource_request/{id}/approvals/{approvalId}/approve [post]
func (c *resourceRequestApiController) approve(ctx *fiber.Ctx) error {
	approvalID, err := c.GetIDByKey(ctx, "approvalId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.ApprovalDecision
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := approvalhandler.Instance.Transition(orgID, approvalID, userID, models.ApprovalStatusApproved, payload.Remarks)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования этапа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отклонить
// @Tags Согласование заявок
// @Description Отклонить активный этап заявки, комментарий обязателен
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	requestapimodels.ApprovalDecision	true	"request body"
// @Param   id          		path    string  				    		true    "rec ID"
// @Param   approvalId         	path    string  				    		true    "approval rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/resource_request/{id}/approvals/{approvalId}/reject [post]
func (c *resourceRequestApiController) reject(ctx *fiber.Ctx) error {
	approvalID, err := c.GetIDByKey(ctx, "approvalId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.ApprovalDecision
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.ValidateReject(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := approvalhandler.Instance.Transition(orgID, approvalID, userID, models.ApprovalStatusRejected, payload.Remarks)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения этапа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Этапы согласования
// @Tags Согласование заявок
// @Description Список этапов согласования заявки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param   id          		path    string  				    		true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/resource_request/{id}/approvals [get]
func (c *resourceRequestApiController) getApprovals(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	result, err := approvalhandler.Instance.ListByRequest(orgID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения этапов согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История согласования
// @Tags Согласование заявок
// @Description Журнал операций по этапам согласования заявки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param   id          		path    string  				    		true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.WorkflowLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/resource_request/{id}/approval_history [get]
func (c *resourceRequestApiController) getApprovalHistory(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	result, err := approvalhandler.Instance.History(orgID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
