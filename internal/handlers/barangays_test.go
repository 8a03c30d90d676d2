package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBarangay_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO barangays")).
		WithArgs("San Isidro").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/barangays", bytes.NewReader([]byte(`{"name":"San Isidro"}`)))
	CreateBarangay(db).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBarangay_DuplicateNameConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Both sides of a concurrent create pass any pre-check; the unique
	// constraint rejects the loser and it must surface as a conflict.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO barangays")).
		WithArgs("San Isidro").
		WillReturnError(&pq.Error{Code: "23505"})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/barangays", bytes.NewReader([]byte(`{"name":"San Isidro"}`)))
	CreateBarangay(db).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBarangay_MissingName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/barangays", bytes.NewReader([]byte(`{}`)))
	CreateBarangay(db).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
