package middleware

import (
	authutils "pm-tools-backend/lib/utils/auth-utils"
	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserOrg(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if org, exist := claims["org"]; exist {
		return org.(string)
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetOrgRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func OrgAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetOrgRole(ctx) != models.OrgAdminRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
