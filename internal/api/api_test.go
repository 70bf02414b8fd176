package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"rentalmanager/internal/database"
)

const testToken = "secret"

type testServer struct {
	router *gin.Engine
	db     *database.Database
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.MigrateSchema())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	SetupRoutes(router, NewHandler(db, Options{Token: testToken}, logger))
	return &testServer{router: router, db: db}
}

func (s *testServer) request(t *testing.T, method, path string, body any, token string) (int, gjson.Result) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w.Code, gjson.ParseBytes(w.Body.Bytes())
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, gjson.Result) {
	t.Helper()
	return s.request(t, method, path, body, testToken)
}

// mustCreate posts body and returns the id of the created record.
func (s *testServer) mustCreate(t *testing.T, path string, body map[string]any) int64 {
	t.Helper()
	status, res := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, status, res.Raw)
	return res.Get("id").Int()
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)
	status, res := s.request(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", res.Get("status").String())
}

func TestRequireToken(t *testing.T) {
	s := setupTestServer(t)

	for _, token := range []string{"", "wrong"} {
		status, res := s.request(t, http.MethodGet, "/v1/properties", nil, token)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, int64(401), res.Get("code").Int())
		assert.Equal(t, "Please authenticate", res.Get("message").String())
	}

	status, _ := s.do(t, http.MethodGet, "/v1/properties", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLogin(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, s.db.EnsureAdmin("Admin", "admin@example.com", "secret1"))

	status, res := s.request(t, http.MethodPost, "/v1/auth/login",
		map[string]any{"email": "ADMIN@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, status, res.Raw)
	assert.Equal(t, testToken, res.Get("tokens.access.token").String())
	assert.True(t, res.Get("tokens.access.expires").Exists())
	assert.Equal(t, "admin", res.Get("user.role").String())

	status, res = s.request(t, http.MethodPost, "/v1/auth/login",
		map[string]any{"email": "admin@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect email or password", res.Get("message").String())

	status, _ = s.request(t, http.MethodPost, "/v1/auth/login", map[string]any{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.request(t, http.MethodPost, "/v1/auth/logout", nil, testToken)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestProperties(t *testing.T) {
	s := setupTestServer(t)

	id := s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Sunrise Tower", "status": 1})

	status, res := s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d", id), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("status").Int())
	assert.NotEmpty(t, res.Get("code").String())

	s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Old Mill", "status": "maintenance"})

	status, res = s.do(t, http.MethodGet, "/v1/properties?status=1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())
	assert.Equal(t, "Sunrise Tower", res.Get("results.0.name").String())

	status, res = s.do(t, http.MethodGet, "/v1/properties?status=maintenance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Old Mill", res.Get("results.0.name").String())

	status, res = s.do(t, http.MethodGet, "/v1/properties?name=sun", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())
}

func TestRooms_CRUD(t *testing.T) {
	s := setupTestServer(t)
	property := s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Sunrise"})
	other := s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Harbor"})

	nested := fmt.Sprintf("/v1/properties/%d/rooms", property)
	room := s.mustCreate(t, nested, map[string]any{"name": "A101", "price": 1500})
	s.mustCreate(t, fmt.Sprintf("/v1/properties/%d/rooms", other), map[string]any{"name": "B1", "price": 900})

	status, res := s.do(t, http.MethodGet, nested, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())
	assert.Equal(t, property, res.Get("results.0.propertyId").Int())
	assert.Equal(t, "available", res.Get("results.0.status").String())
	assert.Equal(t, int64(1), res.Get("results.0.maxOccupants").Int())

	status, res = s.do(t, http.MethodGet, "/v1/rooms", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), res.Get("totalResults").Int())

	member := fmt.Sprintf("%s/%d", nested, room)
	status, res = s.do(t, http.MethodPatch, member, map[string]any{"status": "occupied", "id": 999})
	require.Equal(t, http.StatusOK, status, res.Raw)
	assert.Equal(t, room, res.Get("id").Int())
	assert.Equal(t, "occupied", res.Get("status").String())
	assert.Equal(t, "A101", res.Get("name").String())

	status, res = s.do(t, http.MethodPatch, member, map[string]any{"status": "demolished"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, res.Get("message").String(), "status")

	status, _ = s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d/rooms/%d", other, room), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, member, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, res = s.do(t, http.MethodGet, member, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Room not found", res.Get("message").String())
	assert.Equal(t, int64(404), res.Get("code").Int())

	status, _ = s.do(t, http.MethodGet, nested+"/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRooms_CreateValidation(t *testing.T) {
	s := setupTestServer(t)

	status, res := s.do(t, http.MethodPost, "/v1/rooms", map[string]any{"propertyId": 1, "name": "A101"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, res.Get("message").String(), "price")

	status, _ = s.do(t, http.MethodPost, "/v1/rooms", "not an object")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPagination(t *testing.T) {
	s := setupTestServer(t)
	for i := 0; i < 12; i++ {
		s.mustCreate(t, "/v1/tenants", map[string]any{"fullName": fmt.Sprintf("Tenant %d", i)})
	}

	status, res := s.do(t, http.MethodGet, "/v1/tenants?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), res.Get("page").Int())
	assert.Equal(t, int64(5), res.Get("limit").Int())
	assert.Equal(t, int64(3), res.Get("totalPages").Int())
	assert.Equal(t, int64(12), res.Get("totalResults").Int())
	assert.Len(t, res.Get("results").Array(), 5)
	assert.Equal(t, "Tenant 5", res.Get("results.0.fullName").String())
}

func TestContracts_EmbedsParties(t *testing.T) {
	s := setupTestServer(t)
	property := s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Sunrise"})
	room := s.mustCreate(t, fmt.Sprintf("/v1/properties/%d/rooms", property), map[string]any{"name": "A101", "price": 1500})
	tenant := s.mustCreate(t, "/v1/tenants", map[string]any{"fullName": "Jane Doe"})

	contract := s.mustCreate(t, "/v1/contracts", map[string]any{
		"roomId":    room,
		"tenantId":  tenant,
		"startDate": "2024-01-01T00:00:00Z",
	})

	status, res := s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d/contracts/%d", property, contract), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A101", res.Get("room.name").String())
	assert.Equal(t, "Jane Doe", res.Get("tenant.fullName").String())
	assert.Equal(t, "monthly", res.Get("paymentCycle").String())

	status, res = s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d/tenants", property), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())

	status, res = s.do(t, http.MethodGet, fmt.Sprintf("/v1/rooms/%d", room), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Jane Doe", res.Get("tenants.0.fullName").String())

	status, res = s.do(t, http.MethodPost, "/v1/contracts", map[string]any{
		"roomId":    room,
		"tenantId":  tenant + 100,
		"startDate": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, res.Get("message").String(), "Tenant")
}

func TestNestedPaymentsAndReadings(t *testing.T) {
	s := setupTestServer(t)
	property := s.mustCreate(t, "/v1/properties", map[string]any{"userId": 1, "name": "Sunrise"})
	room := s.mustCreate(t, fmt.Sprintf("/v1/properties/%d/rooms", property), map[string]any{"name": "A101", "price": 1500})
	tenant := s.mustCreate(t, "/v1/tenants", map[string]any{"fullName": "Jane Doe"})
	contract := s.mustCreate(t, "/v1/contracts", map[string]any{"roomId": room, "tenantId": tenant, "startDate": "2024-01-01"})
	invoice := s.mustCreate(t, "/v1/invoices", map[string]any{
		"contractId":  contract,
		"month":       1,
		"year":        2024,
		"periodStart": "2024-01-01",
		"periodEnd":   "2024-01-31",
		"rentAmount":  1500,
		"totalAmount": 1500,
	})

	payments := fmt.Sprintf("/v1/invoices/%d/payments", invoice)
	s.mustCreate(t, payments, map[string]any{"amount": 500, "paidAt": "2024-01-15T10:00:00Z"})

	status, res := s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d/invoices/%d/payments", property, invoice), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())
	assert.Equal(t, invoice, res.Get("results.0.invoiceId").Int())

	status, res = s.do(t, http.MethodGet, fmt.Sprintf("/v1/properties/%d/invoices", property), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())

	meter := s.mustCreate(t, fmt.Sprintf("/v1/properties/%d/utility-meters", property), map[string]any{"meterType": "electricity"})
	readings := fmt.Sprintf("/v1/properties/%d/utility-meters/%d/readings", property, meter)
	s.mustCreate(t, readings, map[string]any{"readingDate": "2024-01-31", "value": 1234.5})

	status, res = s.do(t, http.MethodGet, fmt.Sprintf("/v1/utility-meters/%d/readings", meter), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), res.Get("totalResults").Int())
	assert.Equal(t, property, res.Get("results.0.propertyId").Int())
	assert.Equal(t, 1234.5, res.Get("results.0.value").Float())

	status, _ = s.do(t, http.MethodPost, "/v1/utility-meter-readings", map[string]any{"utilityMeterId": meter + 100, "readingDate": "2024-01-31"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUsers(t *testing.T) {
	s := setupTestServer(t)

	status, res := s.do(t, http.MethodPost, "/v1/users", map[string]any{"name": "Jane", "email": "jane@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, res.Get("message").String(), "password")

	user := s.mustCreate(t, "/v1/users", map[string]any{"name": "Jane", "email": "jane@example.com", "password": "secret1"})

	status, res = s.do(t, http.MethodGet, fmt.Sprintf("/v1/users/%d", user), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", res.Get("role").String())
	assert.False(t, res.Get("password").Exists())

	status, res = s.do(t, http.MethodPost, "/v1/users", map[string]any{"name": "Other", "email": "JANE@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already taken", res.Get("message").String())

	member := fmt.Sprintf("/v1/users/%d", user)
	status, res = s.do(t, http.MethodPatch, member, map[string]any{"currentPassword": "wrong1", "newPassword": "changed1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Current password is incorrect", res.Get("message").String())

	status, _ = s.do(t, http.MethodPatch, member, map[string]any{"currentPassword": "secret1", "newPassword": "changed1"})
	require.Equal(t, http.StatusOK, status)
	_, err := database.Authenticate(s.db.DB(), "jane@example.com", "changed1")
	assert.NoError(t, err)

	status, _ = s.do(t, http.MethodPatch, member, map[string]any{"password": "reset12"})
	require.Equal(t, http.StatusOK, status)
	_, err = database.Authenticate(s.db.DB(), "jane@example.com", "reset12")
	assert.NoError(t, err)
}
