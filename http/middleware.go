package http

import (
	"net/http"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// PrincipalMiddleware reads the identity installed by the upstream auth
// collaborator. Requests without a valid identity never reach a handler.
func PrincipalMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := uuid.Parse(c.Request().Header.Get("X-User-ID"))
		if err != nil {
			return respondError(c, http.StatusUnauthorized, "missing or invalid user identity")
		}

		role := entities.Role(c.Request().Header.Get("X-User-Role"))
		if !role.Valid() {
			return respondError(c, http.StatusUnauthorized, "missing or invalid user role")
		}

		c.Set(principalContextKey, entities.Principal{UserID: userID, Role: role})
		return next(c)
	}
}

func RequireRole(roles ...entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := principalFrom(c)
			for _, role := range roles {
				if principal.Role == role {
					return next(c)
				}
			}
			return respondError(c, http.StatusForbidden, "insufficient role")
		}
	}
}

func principalFrom(c echo.Context) entities.Principal {
	principal, _ := c.Get(principalContextKey).(entities.Principal)
	return principal
}
