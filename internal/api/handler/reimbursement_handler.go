package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revpay/reimbursement-system/internal/api/metrics"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// ReimbursementHandler handles HTTP requests for ledger operations.
type ReimbursementHandler struct {
	service ports.ReimbursementService
}

func NewReimbursementHandler(service ports.ReimbursementService) *ReimbursementHandler {
	return &ReimbursementHandler{service: service}
}

// CreateSelf handles POST /v1/reimbursements/self.
//
// @Summary      File a reimbursement request for the logged-in user
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReimbursementRequest  true  "Request details"
// @Success      201   {object}  reimbursementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/reimbursements/self [post]
func (h *ReimbursementHandler) CreateSelf(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createReimbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateReimbursementInput{
		Caller:      caller,
		OwnerUserID: caller.UserID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues("self").Inc()
	return c.JSON(http.StatusCreated, toReimbursementResponse(created))
}

// CreateForUser handles POST /v1/reimbursements/user/:user_id (manager only).
//
// @Summary      File a reimbursement request on an employee's behalf
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string                      true  "Target user ID"
// @Param        body     body      createReimbursementRequest  true  "Request details"
// @Success      201      {object}  reimbursementResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/reimbursements/user/{user_id} [post]
func (h *ReimbursementHandler) CreateForUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createReimbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateReimbursementInput{
		Caller:      caller,
		OwnerUserID: c.Param("user_id"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues("manager").Inc()
	return c.JSON(http.StatusCreated, toReimbursementResponse(created))
}

// ListSelf handles GET /v1/reimbursements/self.
//
// @Summary      List the logged-in user's reimbursement requests
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending/approved/denied)"
// @Success      200     {object}  listReimbursementsResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/reimbursements/self [get]
func (h *ReimbursementHandler) ListSelf(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListForUser(c.Request().Context(), ports.ListForUserInput{
		Caller:      caller,
		OwnerUserID: caller.UserID,
		Status:      c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(records))
}

// ListForUser handles GET /v1/reimbursements/user/:user_id.
//
// @Summary      List a user's reimbursement requests
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true   "Target user ID"
// @Param        status   query     string  false  "Filter by status"
// @Success      200      {object}  listReimbursementsResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/reimbursements/user/{user_id} [get]
func (h *ReimbursementHandler) ListForUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListForUser(c.Request().Context(), ports.ListForUserInput{
		Caller:      caller,
		OwnerUserID: c.Param("user_id"),
		Status:      c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(records))
}

// ListAll handles GET /v1/reimbursements (manager only).
//
// @Summary      List every reimbursement request
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listReimbursementsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/reimbursements [get]
func (h *ReimbursementHandler) ListAll(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(records))
}

// ListPending handles GET /v1/reimbursements/pending (manager only).
//
// @Summary      List pending reimbursement requests
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listReimbursementsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/reimbursements/pending [get]
func (h *ReimbursementHandler) ListPending(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListPending(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(records))
}

// Update handles PATCH /v1/reimbursements/:id, editing a pending request.
//
// @Summary      Edit a pending reimbursement request
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Reimbursement ID"
// @Param        body  body      updateReimbursementRequest  true  "New amount and description"
// @Success      200   {object}  reimbursementResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/reimbursements/{id} [patch]
func (h *ReimbursementHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateReimbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), ports.UpdateReimbursementInput{
		Caller:          caller,
		ReimbursementID: c.Param("id"),
		Amount:          req.Amount,
		Description:     req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbursementResponse(updated))
}

// Resolve handles PATCH /v1/reimbursements/:id/resolve (manager only).
//
// @Summary      Approve or deny a pending reimbursement request
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Reimbursement ID"
// @Param        body  body      resolveReimbursementRequest  true  "Decision"
// @Success      200   {object}  reimbursementResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/reimbursements/{id}/resolve [patch]
func (h *ReimbursementHandler) Resolve(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req resolveReimbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resolved, err := h.service.Resolve(c.Request().Context(), ports.ResolveInput{
		Caller:          caller,
		ReimbursementID: c.Param("id"),
		Decision:        req.Decision,
	})
	if err != nil {
		return err
	}

	metrics.RequestsResolvedTotal.WithLabelValues(req.Decision).Inc()
	return c.JSON(http.StatusOK, toReimbursementResponse(resolved))
}
