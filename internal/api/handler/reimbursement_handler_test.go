package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// stubReimbursementService records the last input and returns canned results.
type stubReimbursementService struct {
	lastCreate  ports.CreateReimbursementInput
	lastList    ports.ListForUserInput
	lastUpdate  ports.UpdateReimbursementInput
	lastResolve ports.ResolveInput

	result  *domain.Reimbursement
	results []*domain.Reimbursement
	err     error
}

func (s *stubReimbursementService) Create(_ context.Context, input ports.CreateReimbursementInput) (*domain.Reimbursement, error) {
	s.lastCreate = input
	return s.result, s.err
}

func (s *stubReimbursementService) ListForUser(_ context.Context, input ports.ListForUserInput) ([]*domain.Reimbursement, error) {
	s.lastList = input
	return s.results, s.err
}

func (s *stubReimbursementService) ListAll(_ context.Context, _ ports.Caller) ([]*domain.Reimbursement, error) {
	return s.results, s.err
}

func (s *stubReimbursementService) ListPending(_ context.Context, _ ports.Caller) ([]*domain.Reimbursement, error) {
	return s.results, s.err
}

func (s *stubReimbursementService) Update(_ context.Context, input ports.UpdateReimbursementInput) (*domain.Reimbursement, error) {
	s.lastUpdate = input
	return s.result, s.err
}

func (s *stubReimbursementService) Resolve(_ context.Context, input ports.ResolveInput) (*domain.Reimbursement, error) {
	s.lastResolve = input
	return s.result, s.err
}

func sampleReimbursement() *domain.Reimbursement {
	now := time.Now().UTC()
	return &domain.Reimbursement{
		ID:          "r1",
		OwnerUserID: "u1",
		Amount:      50.00,
		Description: "taxi",
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newRequestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func asCaller(c echo.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func TestCreateSelfHandler(t *testing.T) {
	svc := &stubReimbursementService{result: sampleReimbursement()}
	h := NewReimbursementHandler(svc)

	c, rec := newRequestContext(t, http.MethodPost, "/v1/reimbursements/self", `{"amount":50.00,"description":"taxi"}`)
	asCaller(c, "u1", domain.RoleEmployee)

	if err := h.CreateSelf(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.OwnerUserID != "u1" || svc.lastCreate.Caller.UserID != "u1" {
		t.Fatalf("expected self-create for u1, got %+v", svc.lastCreate)
	}

	var body reimbursementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if body.ID != "r1" || body.Status != "pending" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestCreateSelfValidation(t *testing.T) {
	h := NewReimbursementHandler(&stubReimbursementService{})

	cases := []struct {
		name string
		body string
	}{
		{"negative amount", `{"amount":-1,"description":"taxi"}`},
		{"missing description", `{"amount":10}`},
		{"malformed json", `{"amount":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newRequestContext(t, http.MethodPost, "/v1/reimbursements/self", tc.body)
			asCaller(c, "u1", domain.RoleEmployee)

			err := h.CreateSelf(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestCreateSelfRequiresIdentity(t *testing.T) {
	h := NewReimbursementHandler(&stubReimbursementService{})
	c, _ := newRequestContext(t, http.MethodPost, "/v1/reimbursements/self", `{"amount":1,"description":"x"}`)

	err := h.CreateSelf(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestCreateForUserHandler(t *testing.T) {
	svc := &stubReimbursementService{result: sampleReimbursement()}
	h := NewReimbursementHandler(svc)

	c, rec := newRequestContext(t, http.MethodPost, "/v1/reimbursements/user/u7", `{"amount":25.5,"description":"shuttle"}`)
	c.SetParamNames("user_id")
	c.SetParamValues("u7")
	asCaller(c, "u2", domain.RoleManager)

	if err := h.CreateForUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.OwnerUserID != "u7" || svc.lastCreate.Caller.UserID != "u2" {
		t.Fatalf("expected manager create for u7, got %+v", svc.lastCreate)
	}
}

func TestListSelfPassesStatusFilter(t *testing.T) {
	svc := &stubReimbursementService{results: []*domain.Reimbursement{sampleReimbursement()}}
	h := NewReimbursementHandler(svc)

	c, rec := newRequestContext(t, http.MethodGet, "/v1/reimbursements/self?status=pending", "")
	asCaller(c, "u1", domain.RoleEmployee)

	if err := h.ListSelf(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastList.OwnerUserID != "u1" || svc.lastList.Status != "pending" {
		t.Fatalf("unexpected list input: %+v", svc.lastList)
	}

	var body listReimbursementsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "r1" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestListAllEmptyIsEmptyArray(t *testing.T) {
	h := NewReimbursementHandler(&stubReimbursementService{})

	c, rec := newRequestContext(t, http.MethodGet, "/v1/reimbursements", "")
	asCaller(c, "u2", domain.RoleManager)

	if err := h.ListAll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestUpdateHandler(t *testing.T) {
	updated := sampleReimbursement()
	updated.Amount = 62.75
	svc := &stubReimbursementService{result: updated}
	h := NewReimbursementHandler(svc)

	c, rec := newRequestContext(t, http.MethodPatch, "/v1/reimbursements/r1", `{"amount":62.75,"description":"taxi, corrected"}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	asCaller(c, "u1", domain.RoleEmployee)

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUpdate.ReimbursementID != "r1" || svc.lastUpdate.Amount != 62.75 {
		t.Fatalf("unexpected update input: %+v", svc.lastUpdate)
	}
}

func TestUpdatePropagatesServiceError(t *testing.T) {
	svc := &stubReimbursementService{err: domain.ErrInvalidTransition}
	h := NewReimbursementHandler(svc)

	c, _ := newRequestContext(t, http.MethodPatch, "/v1/reimbursements/r1", `{"amount":1,"description":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	asCaller(c, "u1", domain.RoleEmployee)

	if err := h.Update(c); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition to pass through, got %v", err)
	}
}

func TestResolveHandler(t *testing.T) {
	resolved := sampleReimbursement()
	resolved.Status = domain.StatusApproved
	resolved.ResolvedBy = "u2"
	svc := &stubReimbursementService{result: resolved}
	h := NewReimbursementHandler(svc)

	c, rec := newRequestContext(t, http.MethodPatch, "/v1/reimbursements/r1/resolve", `{"decision":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	asCaller(c, "u2", domain.RoleManager)

	if err := h.Resolve(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastResolve.Decision != "approved" || svc.lastResolve.ReimbursementID != "r1" {
		t.Fatalf("unexpected resolve input: %+v", svc.lastResolve)
	}
}

func TestResolveRejectsUnknownDecision(t *testing.T) {
	h := NewReimbursementHandler(&stubReimbursementService{})

	c, _ := newRequestContext(t, http.MethodPatch, "/v1/reimbursements/r1/resolve", `{"decision":"maybe"}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	asCaller(c, "u2", domain.RoleManager)

	err := h.Resolve(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
