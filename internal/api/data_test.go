package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakelog/backend/internal/bundle"
	"github.com/intakelog/backend/internal/service"
	"github.com/intakelog/backend/internal/testdb"
)

var testDefaultUser = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func newDataRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	logs := service.NewLogService(db, nil, time.UTC)
	tracking := service.NewTrackingService(db)
	handler := NewDataHandler(
		service.NewExportService(db, logger),
		service.NewImportService(db, logger, testDefaultUser),
		service.NewMarkdownExportService(logs, tracking, time.UTC),
		testDefaultUser,
	)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func importBody(t *testing.T) []byte {
	t.Helper()
	data, err := bundle.Encode(&bundle.Bundle{
		Version: bundle.Version,
		UserID:  testDefaultUser.String(),
		FoodItems: []bundle.FoodItem{{
			ID:                 uuid.NewString(),
			UserID:             testDefaultUser.String(),
			Name:               "Oats",
			ServingLabel:       "40 g",
			Source:             "custom",
			CaloriesPerServing: 150,
		}},
		DailyActivity: []bundle.DailyActivity{{
			UserID: testDefaultUser.String(), Date: "2026-02-03", Steps: 7000,
		}},
	})
	require.NoError(t, err)
	return data
}

func TestImportEndpoint(t *testing.T) {
	router := newDataRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(importBody(t)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status      string `json:"status"`
		RowsWritten int    `json:"rows_written"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.RowsWritten)
}

func TestImportEndpointMalformedBundle(t *testing.T) {
	router := newDataRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader([]byte("{broken")))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportEndpointInvalidDateRow(t *testing.T) {
	router := newDataRouter(t)

	data, err := bundle.Encode(&bundle.Bundle{
		Version: bundle.Version,
		DailyActivity: []bundle.DailyActivity{{
			UserID: testDefaultUser.String(), Date: "03/02/2026", Steps: 1,
		}},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(data))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Collection  string `json:"collection"`
		RowsWritten int    `json:"rows_written"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "daily_activity", resp.Collection)
	assert.Equal(t, 0, resp.RowsWritten)
}

func TestExportEndpointRoundTrip(t *testing.T) {
	router := newDataRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(importBody(t)))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	b, err := bundle.Decode(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, bundle.Version, b.Version)
	assert.Equal(t, testDefaultUser.String(), b.UserID)
	assert.Len(t, b.FoodItems, 1)
	assert.Len(t, b.DailyActivity, 1)
}

func TestExportEndpointRejectsBadUser(t *testing.T) {
	router := newDataRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?user_id=zzz", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
