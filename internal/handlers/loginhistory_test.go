package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"als-tracker-api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoginHistory_MissingUserID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rr := httptest.NewRecorder()
	GetLoginHistory(db).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/login-history", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetLoginHistory_InvalidUserID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rr := httptest.NewRecorder()
	GetLoginHistory(db).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/login-history?userId=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetLoginHistory_ReturnsNewestFirstCapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "email", "device", "browser", "os", "ip", "login_at", "created_at"}).
		AddRow(2, 7, "teacher@example.com", "Desktop", "Google Chrome", "Windows 10/11", "10.0.0.2", now, now).
		AddRow(1, 7, "teacher@example.com", "Mobile", "Safari", "iOS", "10.0.0.3", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY login_at DESC")).
		WithArgs(7, loginHistoryLimit).
		WillReturnRows(rows)

	rr := httptest.NewRecorder()
	GetLoginHistory(db).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/login-history?userId=7", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Success bool              `json:"success"`
		Data    []models.LoginLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, 2, envelope.Data[0].ID)
	assert.Equal(t, "Google Chrome", envelope.Data[0].Browser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLoginHistory_StorageErrorSurfaced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM login_logs")).
		WillReturnError(errors.New("connection reset by peer"))

	rr := httptest.NewRecorder()
	GetLoginHistory(db).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/login-history?userId=7", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "connection reset by peer")
}
