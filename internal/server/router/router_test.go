package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/config"
	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
	"github.com/mamadbah2/livestockcare/internal/server/handlers"
	"github.com/mamadbah2/livestockcare/internal/server/metrics"
	"github.com/mamadbah2/livestockcare/internal/service/admin"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
	"github.com/mamadbah2/livestockcare/internal/service/auth"
	"github.com/mamadbah2/livestockcare/internal/service/gva"
	"github.com/mamadbah2/livestockcare/internal/service/interpretation"
	"github.com/mamadbah2/livestockcare/internal/service/knowledge"
	"github.com/mamadbah2/livestockcare/internal/service/numbering"
	"github.com/mamadbah2/livestockcare/internal/service/ration"
	"github.com/mamadbah2/livestockcare/internal/service/records"
	"github.com/mamadbah2/livestockcare/internal/service/registers"
	"github.com/mamadbah2/livestockcare/internal/service/reporting"
)

type app struct {
	engine *gin.Engine
	auth   *auth.Service
	store  *memory.Store
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	recorder := audit.NewRecorder(store, nil)
	m, err := metrics.New()
	require.NoError(t, err)

	authSvc := auth.NewService(store, config.AuthConfig{
		JWTSecret:       "router-secret",
		TokenExpiration: time.Hour,
		GuestExpiration: time.Hour,
	}, nil)
	knowledgeSvc := knowledge.NewService(store, recorder, nil)
	reports := reporting.NewService(store, nil, nil)

	h := Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, nil),
		Records: handlers.NewRecordsHandler(records.NewService(store, nil), nil),
		Clinical: handlers.NewClinicalHandler(
			interpretation.NewService(store, knowledgeSvc, m, nil), knowledgeSvc, reports, nil),
		Vet: handlers.NewVetHandler(
			registers.NewService(store, numbering.NewGenerator(store), nil), reports, nil),
		Economics: handlers.NewEconomicsHandler(
			gva.NewService(store, recorder, time.Minute, nil, m, nil),
			ration.NewService(store, recorder, m, nil), reports, nil),
		Admin: handlers.NewAdminHandler(admin.NewService(store, recorder, nil), nil),
	}

	return &app{engine: New("/api", h, authSvc, m, nil), auth: authSvc, store: store}
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *app) register(t *testing.T, phone string, role models.Role) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name: string(role) + " user", Phone: phone, Password: "secret123", Role: role,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func (a *app) admin(t *testing.T) string {
	t.Helper()
	_, err := a.auth.CreateUser(context.Background(), models.RegisterRequest{
		Name: "Root", Phone: "9000000000", Password: "secret123", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	resp, err := a.auth.Login(context.Background(), models.LoginRequest{
		Phone: "9000000000", Password: "secret123", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	return resp.AccessToken
}

func (a *app) guest(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/guest-session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	a.do(t, http.MethodGet, "/api/animals", "", nil)

	rec = a.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `slc_http_requests_total{method="GET",route="/api/animals",status="401"} 1`)
}

func TestRoleMatrix(t *testing.T) {
	a := newApp(t)
	farmer := a.register(t, "9111111111", models.RoleFarmer)
	vet := a.register(t, "9222222222", models.RoleVeterinarian)
	paravet := a.register(t, "9333333333", models.RoleParavet)
	root := a.admin(t)
	guest := a.guest(t)

	area := models.AreaInput{Length: 10, Width: 10, Unit: "meters"}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{"no token", http.MethodGet, "/api/animals", "", nil, http.StatusUnauthorized},
		{"guest blocked from records", http.MethodGet, "/api/animals", guest, nil, http.StatusForbidden},
		{"guest calculator", http.MethodPost, "/api/utilities/area-calculator", guest, area, http.StatusOK},
		{"guest knowledge center", http.MethodGet, "/api/knowledge-center", guest, nil, http.StatusOK},
		{"farmer animals", http.MethodGet, "/api/animals", farmer, nil, http.StatusOK},
		{"farmer stats", http.MethodGet, "/api/dashboard/farmer-stats", farmer, nil, http.StatusOK},
		{"vet blocked from farmer stats", http.MethodGet, "/api/dashboard/farmer-stats", vet, nil, http.StatusForbidden},
		{"farmer cannot record diagnostics", http.MethodPost, "/api/diagnostics", farmer, gin.H{}, http.StatusForbidden},
		{"farmer lists diagnostics", http.MethodGet, "/api/diagnostics", farmer, nil, http.StatusOK},
		{"vet stats", http.MethodGet, "/api/dashboard/vet-stats", vet, nil, http.StatusOK},
		{"paravet blocked from vet registers", http.MethodGet, "/api/vet/opd", paravet, nil, http.StatusForbidden},
		{"paravet reads gva reports", http.MethodGet, "/api/gva/reports", paravet, nil, http.StatusOK},
		{"paravet reads feed items", http.MethodGet, "/api/admin/feed-items", paravet, nil, http.StatusOK},
		{"paravet cannot add feed items", http.MethodPost, "/api/admin/feed-items", paravet, gin.H{}, http.StatusForbidden},
		{"vet blocked from gva settings", http.MethodGet, "/api/gva/settings", vet, nil, http.StatusForbidden},
		{"admin gva settings", http.MethodGet, "/api/gva/settings", root, nil, http.StatusOK},
		{"vet blocked from audit logs", http.MethodGet, "/api/admin/audit-logs", vet, nil, http.StatusForbidden},
		{"admin audit logs", http.MethodGet, "/api/admin/audit-logs", root, nil, http.StatusOK},
		{"public safety rule", http.MethodGet, "/api/safety-rules/brucellosis", "", nil, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLockedCaseRejectsEdits(t *testing.T) {
	a := newApp(t)
	vet := a.register(t, "9222222222", models.RoleVeterinarian)
	root := a.admin(t)

	rec := a.do(t, http.MethodPost, "/api/vet/opd", vet, gin.H{
		"farmer_name": "Ravi",
		"species":     "cattle",
		"symptoms":    "fever",
		"result":      "ongoing",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created models.ClinicalCase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.CaseNumber, "OPD-"), created.CaseNumber)

	rec = a.do(t, http.MethodPut, "/api/admin/records/opd/"+created.ID+"/lock?locked=true&reason=audit", root, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Record locked successfully")

	rec = a.do(t, http.MethodPut, "/api/vet/opd/"+created.ID, vet, gin.H{
		"farmer_name": "Ravi",
		"species":     "cattle",
		"symptoms":    "fever",
		"result":      "recovered",
	})
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Contains(t, rec.Body.String(), "Record is locked by admin: audit")

	assert.Equal(t, 1, a.store.AuditLen())
}

func TestGVASettingsRejectNegativeOverrides(t *testing.T) {
	a := newApp(t)
	root := a.admin(t)

	rec := a.do(t, http.MethodPut, "/api/gva/settings", root, gin.H{"milk": gin.H{"in_milk_percentage": -5}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, 0, a.store.AuditLen())

	rec = a.do(t, http.MethodPut, "/api/gva/settings", root, gin.H{"egg": gin.H{"input_cost_percentage": 0}})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestFeedItemUpdateIsAFullReplace(t *testing.T) {
	a := newApp(t)
	root := a.admin(t)
	farmer := a.register(t, "9111111111", models.RoleFarmer)

	rec := a.do(t, http.MethodPost, "/api/admin/feed-items", root, gin.H{
		"name": "Groundnut Cake", "category": "oil_cakes", "dm_percentage": 90, "cp_percentage": 40,
		"default_price_per_kg": 35, "max_inclusion_percentage": 15,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var item models.FeedItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = a.do(t, http.MethodPut, "/api/admin/feed-items/"+item.ID, root, gin.H{
		"name": "Groundnut Cake", "category": "oil_cakes", "dm_percentage": 90, "cp_percentage": 40,
		"default_price_per_kg": 38,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/api/admin/feed-items?is_active=true", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.FeedItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Nil(t, items[0].MaxInclusionPercentage)
	assert.Equal(t, 38.0, items[0].DefaultPricePerKg)

	rec = a.do(t, http.MethodPost, "/api/ration/calculate", farmer, gin.H{
		"species": "cattle", "body_weight_kg": 350, "physiological_status": "maintenance",
		"selected_feeds": []string{item.ID},
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDiagnosticPDFNotFound(t *testing.T) {
	a := newApp(t)
	vet := a.register(t, "9222222222", models.RoleVeterinarian)

	rec := a.do(t, http.MethodGet, "/api/reports/diagnostic/missing/pdf", vet, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Diagnostic not found")
}
