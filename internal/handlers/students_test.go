package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentBody(t *testing.T, lrn string) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"lrn":       lrn,
		"firstName": "Juan",
		"lastName":  "Dela Cruz",
	})
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestCreateStudent_RejectsMalformedLRN(t *testing.T) {
	tests := []struct {
		name string
		lrn  string
	}{
		{"leading minus sign", "-12345678901"},
		{"leading plus sign", "+12345678901"},
		{"decimal point", "1234567.8901"},
		{"too short", "12345678901"},
		{"too long", "1234567890123"},
		{"letters", "12345678901a"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/students", studentBody(t, tt.lrn))
			CreateStudent(db).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			// Nothing reaches the database for a malformed LRN.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateStudent_AcceptsTwelveDigitLRN(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students")).
		WithArgs("123456789012", "Juan", "Dela Cruz", nil, "", nil, nil, "enrolled").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/students", studentBody(t, "123456789012"))
	CreateStudent(db).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllStudents_InvalidFilterIDs(t *testing.T) {
	for _, target := range []string{"barangayId", "programId"} {
		t.Run(target, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/students?"+target+"=abc", nil)
			GetAllStudents(db).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
