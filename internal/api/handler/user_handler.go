package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revpay/reimbursement-system/internal/api/metrics"
	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// UserHandler handles HTTP requests for directory operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=employee manager"`
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}

// List handles GET /v1/users (manager only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}

// UpdateRole handles PATCH /v1/users/:user_id/role (manager only).
//
// @Summary      Promote or demote a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "Target user ID"
// @Param        body     body      updateRoleRequest  true  "New role"
// @Success      200      {object}  domain.User
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/users/{user_id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateRole(c.Request().Context(), caller, c.Param("user_id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/users/:user_id (manager only). Removing a user
// also removes every reimbursement they own.
//
// @Summary      Delete a user and their reimbursement requests
// @Tags         users
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Target user ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{user_id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("user_id")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
