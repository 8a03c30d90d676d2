package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

func GetAllBarangays(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT id, name, created_at, updated_at
			FROM barangays
			ORDER BY name ASC
		`)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch barangays")
			return
		}
		defer rows.Close()

		barangays := []models.Barangay{}
		for rows.Next() {
			var b models.Barangay
			err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan barangay data")
				return
			}
			barangays = append(barangays, b)
		}

		responses.SendSuccessResponse(w, http.StatusOK, barangays)
	}
}

func CreateBarangay(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name" validate:"required"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
			return
		}

		var id int
		err := db.QueryRow(`
			INSERT INTO barangays (name)
			VALUES ($1)
			RETURNING id
		`, req.Name).Scan(&id)

		if err != nil {
			// The unique constraint decides duplicates, so concurrent creates
			// of the same name cannot both land.
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "Barangay '"+req.Name+"' already exists")
				return
			}
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create barangay")
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]int{"id": id})
	}
}

func DeleteBarangay(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid barangay ID")
			return
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM students WHERE barangay_id = $1", id).Scan(&count)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to check barangay usage")
			return
		}

		if count > 0 {
			responses.SendErrorResponse(w, http.StatusConflict, "Cannot delete barangay with enrolled students")
			return
		}

		result, err := db.Exec("DELETE FROM barangays WHERE id = $1", id)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete barangay")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Barangay not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Barangay deleted successfully")
	}
}
