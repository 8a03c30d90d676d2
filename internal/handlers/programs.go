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

func GetAllPrograms(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT id, name, description, created_at, updated_at
			FROM programs
			ORDER BY name ASC
		`)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch programs")
			return
		}
		defer rows.Close()

		programs := []models.Program{}
		for rows.Next() {
			var p models.Program
			err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan program data")
				return
			}
			programs = append(programs, p)
		}

		responses.SendSuccessResponse(w, http.StatusOK, programs)
	}
}

func CreateProgram(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
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
			INSERT INTO programs (name, description)
			VALUES ($1, $2)
			RETURNING id
		`, req.Name, req.Description).Scan(&id)

		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "Program '"+req.Name+"' already exists")
				return
			}
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create program")
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]int{"id": id})
	}
}

func UpdateProgram(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid program ID")
			return
		}

		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
			return
		}

		result, err := db.Exec(`
			UPDATE programs
			SET name = $1, description = $2, updated_at = NOW()
			WHERE id = $3
		`, req.Name, req.Description, id)

		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "Program '"+req.Name+"' already exists")
				return
			}
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update program")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Program not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Program updated successfully")
	}
}

func DeleteProgram(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid program ID")
			return
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM students WHERE program_id = $1", id).Scan(&count)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to check program usage")
			return
		}

		if count > 0 {
			responses.SendErrorResponse(w, http.StatusConflict, "Cannot delete program with enrolled students")
			return
		}

		result, err := db.Exec("DELETE FROM programs WHERE id = $1", id)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete program")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Program not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Program deleted successfully")
	}
}
