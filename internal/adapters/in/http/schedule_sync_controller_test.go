package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/in"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/services/schedule_sync_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	report *domain.SyncReport
	rules  []domain.WeekdayRule
	err    error

	gotFieldID int64
	gotRules   []domain.WeekdayRule
	gotMode    domain.GenerationMode
}

func (f *fakeUseCase) SyncSchedule(ctx context.Context, fieldID int64, rules []domain.WeekdayRule, mode domain.GenerationMode) (*domain.SyncReport, error) {
	f.gotFieldID = fieldID
	f.gotRules = rules
	f.gotMode = mode
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeUseCase) CurrentSchedule(ctx context.Context, fieldID int64) ([]domain.WeekdayRule, error) {
	f.gotFieldID = fieldID
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}

func setupRouter(useCase in.ScheduleSyncUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "sync", Password: "secret"},
	}

	router := gin.New()
	NewScheduleSyncController(useCase, cfg).RegisterRoutes(router)
	return router
}

func performRequest(router *gin.Engine, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.SetBasicAuth("sync", "secret")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

const validSyncBody = `{
	"mode": "fresh",
	"days": [
		{"day": "mon", "openTime": "08:00", "closeTime": "22:00"}
	]
}`

func TestHealthEndpointNeedsNoAuth(t *testing.T) {
	router := setupRouter(&fakeUseCase{})

	recorder := performRequest(router, http.MethodGet, "/health", "", false)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "ok", body["status"])
}

func TestSyncScheduleEndpointRequiresAuth(t *testing.T) {
	router := setupRouter(&fakeUseCase{})

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", validSyncBody, false)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Header().Get("WWW-Authenticate"), "Basic")
}

func TestSyncScheduleEndpointRejectsWrongCredentials(t *testing.T) {
	router := setupRouter(&fakeUseCase{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/fields/7/schedule", strings.NewReader(validSyncBody))
	req.SetBasicAuth("sync", "wrong")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSyncScheduleEndpointValidatesRequest(t *testing.T) {
	t.Run("malformed field id", func(t *testing.T) {
		router := setupRouter(&fakeUseCase{})
		recorder := performRequest(router, http.MethodPut, "/api/v1/fields/abc/schedule", validSyncBody, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown mode", func(t *testing.T) {
		router := setupRouter(&fakeUseCase{})
		body := `{"mode": "weekly", "days": [{"day": "mon", "closed": true}]}`
		recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", body, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing days", func(t *testing.T) {
		router := setupRouter(&fakeUseCase{})
		recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", `{"mode": "fresh"}`, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSyncScheduleEndpointSuccess(t *testing.T) {
	useCase := &fakeUseCase{
		report: &domain.SyncReport{
			RunID:   uuid.New(),
			FieldID: 7,
			Mode:    domain.GenerationModeFresh,
			Deleted: 4,
			Created: 6,
		},
	}
	router := setupRouter(useCase)

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", validSyncBody, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(7), useCase.gotFieldID)
	assert.Equal(t, domain.GenerationModeFresh, useCase.gotMode)
	require.Len(t, useCase.gotRules, 1)
	assert.Equal(t, domain.WeekdayMon, useCase.gotRules[0].Weekday)

	body := decodeBody(t, recorder)
	assert.Contains(t, body, "report")
	assert.NotContains(t, body, "warning")
}

func TestSyncScheduleEndpointWarnsOnItemFailures(t *testing.T) {
	useCase := &fakeUseCase{
		report: &domain.SyncReport{
			RunID:   uuid.New(),
			FieldID: 7,
			Mode:    domain.GenerationModeResync,
			Created: 5,
			ItemFailures: []domain.BatchItemFailure{
				{Operation: domain.BatchOperationCreate, Date: "2025-03-20", Error: "timeout"},
			},
		},
	}
	router := setupRouter(useCase)

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", `{"mode": "resync", "days": [{"day": "mon", "closed": true}]}`, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Some slots may need manual review", body["warning"])
}

func TestSyncScheduleEndpointAppliesCopy(t *testing.T) {
	useCase := &fakeUseCase{
		report: &domain.SyncReport{RunID: uuid.New(), FieldID: 7, Mode: domain.GenerationModeFresh},
	}
	router := setupRouter(useCase)

	body := `{
		"mode": "fresh",
		"days": [
			{"day": "mon", "openTime": "08:00", "closeTime": "22:00"},
			{"day": "tue", "closed": true}
		],
		"copy": {"from": "mon", "to": ["tue"]}
	}`
	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", body, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, useCase.gotRules, 2)
	assert.False(t, useCase.gotRules[1].Closed)
	assert.Equal(t, useCase.gotRules[0].OpenTime, useCase.gotRules[1].OpenTime)
	assert.Equal(t, useCase.gotRules[0].CloseTime, useCase.gotRules[1].CloseTime)
}

func TestSyncScheduleEndpointMapsValidationErrors(t *testing.T) {
	useCase := &fakeUseCase{
		err: &schedule_sync_service.RulesValidationError{
			Errors: []schedule_sync_service.RuleValidationError{
				{Weekday: domain.WeekdayMon, Reason: "open time must be before close time"},
			},
		},
	}
	router := setupRouter(useCase)

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", validSyncBody, true)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	body := decodeBody(t, recorder)
	days, ok := body["days"].([]interface{})
	require.True(t, ok)
	require.Len(t, days, 1)
}

func TestSyncScheduleEndpointMapsFetchFailureAsRetryable(t *testing.T) {
	useCase := &fakeUseCase{
		err: schedule_sync_service.ErrFetchFailed,
	}
	router := setupRouter(useCase)

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", validSyncBody, true)

	require.Equal(t, http.StatusBadGateway, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["retryable"])
}

func TestSyncScheduleEndpointMapsUnknownErrors(t *testing.T) {
	useCase := &fakeUseCase{
		err: errors.New("boom"),
	}
	router := setupRouter(useCase)

	recorder := performRequest(router, http.MethodPut, "/api/v1/fields/7/schedule", validSyncBody, true)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCurrentScheduleEndpoint(t *testing.T) {
	t.Run("returns derived weekly rules", func(t *testing.T) {
		useCase := &fakeUseCase{
			rules: []domain.WeekdayRule{
				{Weekday: domain.WeekdayMon, OpenTime: 8 * 60, CloseTime: 22 * 60},
				{Weekday: domain.WeekdayTue, Closed: true},
			},
		}
		router := setupRouter(useCase)

		recorder := performRequest(router, http.MethodGet, "/api/v1/fields/7/schedule", "", true)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, float64(7), body["fieldId"])
		days, ok := body["days"].([]interface{})
		require.True(t, ok)
		assert.Len(t, days, 2)
	})

	t.Run("maps fetch failure", func(t *testing.T) {
		useCase := &fakeUseCase{err: schedule_sync_service.ErrFetchFailed}
		router := setupRouter(useCase)

		recorder := performRequest(router, http.MethodGet, "/api/v1/fields/7/schedule", "", true)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}
