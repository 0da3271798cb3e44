package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShiftService records the arguments of each call and replays the
// configured responses.
type fakeShiftService struct {
	createResp shift.ShiftResponse
	createErr  error
	gotCreate  *shift.CreateShiftRequest

	getResp shift.ShiftResponse
	getErr  error

	updateResp shift.ShiftResponse
	updateErr  error
	gotUpdate  *shift.UpdateShiftRequest

	deleteErr error

	cancelResp shift.ShiftResponse
	cancelErr  error

	clockResp     shift.ClockActionResponse
	clockErr      error
	gotClockShift string
	gotClockUser  string

	listResp  shift.ListShiftsResponse
	listErr   error
	gotFilter shift.ShiftFilter

	myShiftsResp shift.ListShiftsResponse
	gotMyUserID  string

	batchResp shift.BatchReconcileResponse
	batchErr  error
	gotItems  []shift.BatchShiftItem
}

func (f *fakeShiftService) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	f.gotCreate = &req
	return f.createResp, f.createErr
}

func (f *fakeShiftService) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakeShiftService) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	f.gotUpdate = &req
	return f.updateResp, f.updateErr
}

func (f *fakeShiftService) DeleteShift(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeShiftService) CancelShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return f.cancelResp, f.cancelErr
}

func (f *fakeShiftService) ClockIn(ctx context.Context, shiftID, userID string) (shift.ClockActionResponse, error) {
	f.gotClockShift = shiftID
	f.gotClockUser = userID
	return f.clockResp, f.clockErr
}

func (f *fakeShiftService) ClockOut(ctx context.Context, shiftID, userID string) (shift.ClockActionResponse, error) {
	f.gotClockShift = shiftID
	f.gotClockUser = userID
	return f.clockResp, f.clockErr
}

func (f *fakeShiftService) BatchReconcile(ctx context.Context, items []shift.BatchShiftItem) (shift.BatchReconcileResponse, error) {
	f.gotItems = items
	return f.batchResp, f.batchErr
}

func (f *fakeShiftService) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	f.gotFilter = filter
	return f.listResp, f.listErr
}

func (f *fakeShiftService) MyShifts(ctx context.Context, userID string, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	f.gotMyUserID = userID
	f.gotFilter = filter
	return f.myShiftsResp, f.listErr
}

// withClaims places a JWT with the given identity on the request
// context, the way the verifier middleware would.
func withClaims(r *http.Request, userID string, role user.Role) *http.Request {
	tok := jwt.New()
	_ = tok.Set("user_id", userID)
	_ = tok.Set("role", string(role))
	return r.WithContext(jwtauth.NewContext(r.Context(), tok, nil))
}

// withURLParam plants a chi route parameter on the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validCreateShiftBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Morning support",
		"role":        "Support Worker",
		"typeOfShift": []string{"Morning", "Weekday"},
		"user":        "worker-1",
		"startTime":   "09:00",
		"finishTime":  "17:00",
		"date":        "2026-09-10",
		"location": map[string]interface{}{
			"name":     "Riverside House",
			"address":  "1 River Lane",
			"postCode": "AB1 2CD",
			"cordinates": map[string]float64{
				"longitude": -0.1276,
				"latitude":  51.5072,
			},
		},
	})
	return body
}

func TestShiftHandler_Create_Success(t *testing.T) {
	svc := &fakeShiftService{
		createResp: shift.ShiftResponse{ID: "shift-1", Title: "Morning support", Status: "Scheduled"},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts", bytes.NewReader(validCreateShiftBody()))
	w := httptest.NewRecorder()

	// Act
	handler.Create(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.gotCreate)
	assert.Equal(t, "Morning support", svc.gotCreate.Title)
	assert.Equal(t, "worker-1", svc.gotCreate.UserID)
	assert.Equal(t, "Riverside House", svc.gotCreate.Location.Name)
	assert.InDelta(t, -0.1276, svc.gotCreate.Location.Coordinates.Longitude, 0.0001)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "shift-1", resp["data"].(map[string]interface{})["id"])
}

func TestShiftHandler_Create_ValidationError(t *testing.T) {
	svc := &fakeShiftService{}
	handler := NewShiftHandler(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"role": "Support Worker",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts", bytes.NewReader(body))
	w := httptest.NewRecorder()

	// Act
	handler.Create(w, req)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.gotCreate, "service should not be called when validation fails")
}

func TestShiftHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewShiftHandler(&fakeShiftService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	// Act
	handler.Create(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShiftHandler_Get_OwnShift(t *testing.T) {
	svc := &fakeShiftService{
		getResp: shift.ShiftResponse{ID: "shift-1", User: user.Summary{ID: "worker-1"}},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/shift-1", nil)
	req = withClaims(req, "worker-1", user.RoleStaff)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.Get(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShiftHandler_Get_OtherWorkersShiftForbidden(t *testing.T) {
	svc := &fakeShiftService{
		getResp: shift.ShiftResponse{ID: "shift-1", User: user.Summary{ID: "worker-2"}},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/shift-1", nil)
	req = withClaims(req, "worker-1", user.RoleStaff)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.Get(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShiftHandler_Get_AdminSeesAnyShift(t *testing.T) {
	svc := &fakeShiftService{
		getResp: shift.ShiftResponse{ID: "shift-1", User: user.Summary{ID: "worker-2"}},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/shift-1", nil)
	req = withClaims(req, "admin-1", user.RoleAdmin)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.Get(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShiftHandler_Get_NotFound(t *testing.T) {
	svc := &fakeShiftService{getErr: shift.ErrShiftNotFound}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/missing", nil)
	req = withClaims(req, "admin-1", user.RoleAdmin)
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	// Act
	handler.Get(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShiftHandler_Cancel_AlreadyCancelled(t *testing.T) {
	svc := &fakeShiftService{cancelErr: shift.ErrAlreadyCancelled}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/shift-1/cancel", nil)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.Cancel(w, req)

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestShiftHandler_ClockIn_Success(t *testing.T) {
	clockIn := "09:05"
	svc := &fakeShiftService{
		clockResp: shift.ClockActionResponse{ID: "shift-1", Status: "In Progress", ClockInTime: &clockIn},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/shift-1/clock-in", nil)
	req = withClaims(req, "worker-1", user.RoleStaff)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.ClockIn(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shift-1", svc.gotClockShift)
	assert.Equal(t, "worker-1", svc.gotClockUser)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "In Progress", data["status"])
	assert.Equal(t, "09:05", data["clockInTime"])
}

func TestShiftHandler_ClockIn_NoIdentity(t *testing.T) {
	svc := &fakeShiftService{}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/shift-1/clock-in", nil)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.ClockIn(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.gotClockShift)
}

func TestShiftHandler_ClockIn_OutsideWindow(t *testing.T) {
	svc := &fakeShiftService{
		clockErr: &shift.ClockWindowError{Code: shift.CodeClockInTooEarly, Message: "too early to clock in"},
	}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/shift-1/clock-in", nil)
	req = withClaims(req, "worker-1", user.RoleStaff)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.ClockIn(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, shift.CodeClockInTooEarly, resp["error"].(map[string]interface{})["code"])
}

func TestShiftHandler_ClockOut_NotAssigned(t *testing.T) {
	svc := &fakeShiftService{clockErr: shift.ErrWorkerNotAssigned}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/shift-1/clock-out", nil)
	req = withClaims(req, "worker-2", user.RoleStaff)
	req = withURLParam(req, "id", "shift-1")
	w := httptest.NewRecorder()

	// Act
	handler.ClockOut(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShiftHandler_List_ParsesQuery(t *testing.T) {
	svc := &fakeShiftService{}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts?status=Scheduled&page=2&limit=25&sortBy=startTime&sortOrder=asc&user=worker-1", nil)
	w := httptest.NewRecorder()

	// Act
	handler.List(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotFilter.Status)
	assert.Equal(t, "Scheduled", *svc.gotFilter.Status)
	assert.Equal(t, 2, svc.gotFilter.Page)
	assert.Equal(t, 25, svc.gotFilter.Limit)
	assert.Equal(t, "startTime", svc.gotFilter.SortBy)
	assert.Equal(t, "asc", svc.gotFilter.SortOrder)
	require.NotNil(t, svc.gotFilter.UserID)
	assert.Equal(t, "worker-1", *svc.gotFilter.UserID)
}

func TestShiftHandler_MyShifts_UsesCallerIdentity(t *testing.T) {
	svc := &fakeShiftService{}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/my?status=Completed", nil)
	req = withClaims(req, "worker-1", user.RoleStaff)
	w := httptest.NewRecorder()

	// Act
	handler.MyShifts(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "worker-1", svc.gotMyUserID)
	require.NotNil(t, svc.gotFilter.Status)
	assert.Equal(t, "Completed", *svc.gotFilter.Status)
}

func TestShiftHandler_MyShifts_NoIdentity(t *testing.T) {
	handler := NewShiftHandler(&fakeShiftService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/my", nil)
	w := httptest.NewRecorder()

	// Act
	handler.MyShifts(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShiftHandler_BatchReconcile_Success(t *testing.T) {
	svc := &fakeShiftService{
		batchResp: shift.BatchReconcileResponse{
			Created: []shift.ShiftResponse{{ID: "shift-1"}},
			Updated: []shift.ShiftResponse{},
			Errors:  []shift.BatchShiftError{},
		},
	}
	handler := NewShiftHandler(svc)

	body := []byte(`[{"title": "Night cover", "role": "Nurse"}, {"id": "shift-2", "title": "Renamed"}]`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/batch", bytes.NewReader(body))
	w := httptest.NewRecorder()

	// Act
	handler.BatchReconcile(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.gotItems, 2)
	assert.Nil(t, svc.gotItems[0].ID)
	require.NotNil(t, svc.gotItems[1].ID)
	assert.Equal(t, "shift-2", *svc.gotItems[1].ID)
}

func TestShiftHandler_BatchReconcile_RejectsNonArray(t *testing.T) {
	svc := &fakeShiftService{}
	handler := NewShiftHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/batch", bytes.NewReader([]byte(`{"title": "not an array"}`)))
	w := httptest.NewRecorder()

	// Act
	handler.BatchReconcile(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.gotItems)
}
