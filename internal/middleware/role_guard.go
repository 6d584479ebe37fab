package middleware

import (
	"net/http"

	"greenbasket/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleを見て許可する役割を絞る。

func AdminRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleAdmin)
}

func DeliveryRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleDelivery)
}

// 注文ステータス更新はADMINとDELIVERYの両方が使う
func StaffRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleAdmin, model.RoleDelivery)
}

func roleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, a := range allowed {
				if model.Role(role) == a {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}
