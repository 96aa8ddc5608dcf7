package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"medstock/m/domain"
	"medstock/m/internal/seed"
	"medstock/m/internal/socket"
	"medstock/m/internal/store"
)

const (
	testPassword   = "password123"
	doctorEmail    = "sarah.nakimuli@mpigi.ug"
	pharmacistMail = "florence.namukasa@mpigi.ug"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	st, err := store.New(store.Config{
		Users:      seed.Users(),
		Medicines:  seed.Medicines(now),
		Requests:   seed.Requests(now),
		Password:   testPassword,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)
	logger := zap.NewNop()
	return New(st, socket.NewHub(logger), logger, Settings{Secret: "test-secret", TokenTTL: time.Hour}), st
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(t, h.Router(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	h, st := newTestHandler(t)
	router := h.Router()

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", loginRequest{Email: pharmacistMail, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.RolePharmacist, resp.User.Role)

	rec = doRequest(t, router, http.MethodGet, "/auth/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "3", me.ID)

	rec = doRequest(t, router, http.MethodPost, "/auth/logout", resp.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := st.CurrentUser()
	assert.False(t, ok)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", loginRequest{Email: pharmacistMail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", loginRequest{Email: "nobody@mpigi.ug", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()

	rec := doRequest(t, router, http.MethodGet, "/medicines", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/medicines", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDispenseOverHTTP(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()
	token := loginAs(t, router, pharmacistMail)

	rec := doRequest(t, router, http.MethodPost, "/requests/r-1/approve", token, reviewPayload{Notes: "ok"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved domain.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, "Florence Namukasa", approved.ApprovedBy)

	rec = doRequest(t, router, http.MethodPost, "/requests/r-1/dispense", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/medicines/2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m domain.Medicine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 45, m.QuantityInStock)

	rec = doRequest(t, router, http.MethodGet, "/usage", token, nil)
	var usage []domain.UsageRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usage))
	require.Len(t, usage, 1)
	assert.Equal(t, 30, usage[0].QuantityUsed)

	rec = doRequest(t, router, http.MethodGet, "/alerts", token, nil)
	var alerts []domain.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "stock-2")
	assert.NotContains(t, ids, "request-r-1")
}

func TestErrorStatusMapping(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()
	doc := loginAs(t, router, doctorEmail)
	pharm := loginAs(t, router, pharmacistMail)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"doctor cannot approve", http.MethodPost, "/requests/r-1/approve", doc, nil, http.StatusForbidden},
		{"pending cannot be dispensed", http.MethodPost, "/requests/r-1/dispense", pharm, nil, http.StatusConflict},
		{"unknown request", http.MethodPost, "/requests/r-99/reject", pharm, nil, http.StatusNotFound},
		{"unknown medicine", http.MethodGet, "/medicines/99", pharm, nil, http.StatusNotFound},
		{"update unknown medicine", http.MethodPut, "/medicines/99", pharm, map[string]int{"quantity_in_stock": 5}, http.StatusNotFound},
		{"zero quantity", http.MethodPost, "/requests", doc, submitRequestPayload{MedicineID: "1", QuantityRequested: 0, Reason: "x"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/requests", doc, map[string]string{"colour": "red"}, http.StatusBadRequest},
		{"bad expiry date", http.MethodPut, "/medicines/1", pharm, map[string]string{"expiry_date": "15/10/2026"}, http.StatusBadRequest},
		{"unknown alert", http.MethodDelete, "/alerts/nope", pharm, nil, http.StatusNotFound},
		{"bad window", http.MethodGet, "/reports/analytics?days=12", pharm, nil, http.StatusBadRequest},
		{"bad expiry status", http.MethodGet, "/expiry?status=soon", pharm, nil, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSubmitRequestUsesCaller(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()
	doc := loginAs(t, router, doctorEmail)

	rec := doRequest(t, router, http.MethodPost, "/requests", doc, submitRequestPayload{
		MedicineID: "6", QuantityRequested: 10, Reason: "Diarrhoea outbreak",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "1", created.DoctorID)
	assert.Equal(t, "Pediatrics", created.Department)
	assert.Equal(t, "ORS Sachets", created.MedicineName)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, domain.StatusPending, created.Status)

	rec = doRequest(t, router, http.MethodGet, "/requests", doc, nil)
	var mine []domain.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	for _, r := range mine {
		assert.Equal(t, "1", r.DoctorID)
	}
	assert.Len(t, mine, 2)
}

func TestAddAndUpdateMedicine(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()
	pharm := loginAs(t, router, pharmacistMail)

	rec := doRequest(t, router, http.MethodPost, "/medicines", pharm, map[string]interface{}{
		"name": "Metformin 500mg", "generic_name": "Metformin", "category": "Antidiabetic",
		"manufacturer": "Cipla Uganda", "batch_number": "MET2026001", "expiry_date": "2027-06-30",
		"quantity_in_stock": 10, "minimum_stock_level": 40, "unit_price": "120.50", "location": "Shelf C1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m domain.Medicine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "120.5", m.UnitPrice.String())

	rec = doRequest(t, router, http.MethodPut, "/medicines/"+m.ID, pharm, map[string]int{"quantity_in_stock": 400})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 400, m.QuantityInStock)
	assert.Equal(t, "Metformin 500mg", m.Name)

	doc := loginAs(t, router, doctorEmail)
	rec = doRequest(t, router, http.MethodPut, "/medicines/"+m.ID, doc, map[string]int{"quantity_in_stock": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalyticsExport(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()
	pharm := loginAs(t, router, pharmacistMail)

	rec := doRequest(t, router, http.MethodGet, "/reports/analytics/export?days=90", pharm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "analytics-90d.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "section,label,count,quantity,percent"))

	rec = doRequest(t, router, http.MethodGet, "/reports/dashboard", pharm, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebsocketPushesAlerts(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	token := loginAs(t, h.Router(), pharmacistMail)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg alertsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "alerts", msg.Type)
	assert.NotEmpty(t, msg.Alerts)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	assert.Error(t, err)
}
