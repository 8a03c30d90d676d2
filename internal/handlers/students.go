package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"
	"als-tracker-api/internal/utils"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

func GetAllStudents(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT
				s.id, s.lrn, s.first_name, s.last_name, s.birth_date, s.gender,
				s.barangay_id, b.name AS barangay_name,
				s.program_id, p.name AS program_name,
				s.status, s.created_at, s.updated_at
			FROM students s
			LEFT JOIN barangays b ON s.barangay_id = b.id
			LEFT JOIN programs p ON s.program_id = p.id
			WHERE 1=1
		`
		args := []interface{}{}
		argPos := 1

		if rawID := r.URL.Query().Get("barangayId"); rawID != "" {
			barangayID, err := strconv.Atoi(rawID)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid barangayId")
				return
			}
			query += " AND s.barangay_id = $" + strconv.Itoa(argPos)
			args = append(args, barangayID)
			argPos++
		}

		if rawID := r.URL.Query().Get("programId"); rawID != "" {
			programID, err := strconv.Atoi(rawID)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid programId")
				return
			}
			query += " AND s.program_id = $" + strconv.Itoa(argPos)
			args = append(args, programID)
			argPos++
		}

		if status := r.URL.Query().Get("status"); status != "" {
			query += " AND s.status = $" + strconv.Itoa(argPos)
			args = append(args, status)
			argPos++
		}

		if search := r.URL.Query().Get("q"); search != "" {
			query += " AND (s.first_name ILIKE $" + strconv.Itoa(argPos) +
				" OR s.last_name ILIKE $" + strconv.Itoa(argPos) +
				" OR s.lrn LIKE $" + strconv.Itoa(argPos) + ")"
			args = append(args, "%"+search+"%")
			argPos++
		}

		query += " ORDER BY s.last_name ASC, s.first_name ASC"

		rows, err := db.Query(query, args...)
		if err != nil {
			zap.L().Error("Error querying students", zap.Error(err))
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch students")
			return
		}
		defer rows.Close()

		students := []models.Student{}
		for rows.Next() {
			var s models.Student
			err := rows.Scan(&s.ID, &s.LRN, &s.FirstName, &s.LastName, &s.BirthDate, &s.Gender,
				&s.BarangayID, &s.BarangayName, &s.ProgramID, &s.ProgramName,
				&s.Status, &s.CreatedAt, &s.UpdatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan student data")
				return
			}
			students = append(students, s)
		}

		responses.SendSuccessResponse(w, http.StatusOK, students)
	}
}

func GetStudentByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid student ID")
			return
		}

		var s models.Student
		err = db.QueryRow(`
			SELECT
				s.id, s.lrn, s.first_name, s.last_name, s.birth_date, s.gender,
				s.barangay_id, b.name AS barangay_name,
				s.program_id, p.name AS program_name,
				s.status, s.created_at, s.updated_at
			FROM students s
			LEFT JOIN barangays b ON s.barangay_id = b.id
			LEFT JOIN programs p ON s.program_id = p.id
			WHERE s.id = $1
		`, id).Scan(&s.ID, &s.LRN, &s.FirstName, &s.LastName, &s.BirthDate, &s.Gender,
			&s.BarangayID, &s.BarangayName, &s.ProgramID, &s.ProgramName,
			&s.Status, &s.CreatedAt, &s.UpdatedAt)

		if err != nil {
			if err == sql.ErrNoRows {
				responses.SendErrorResponse(w, http.StatusNotFound, "Student not found")
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch student")
			}
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, s)
	}
}

func CreateStudent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.StudentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		status := req.Status
		if status == "" {
			status = "enrolled"
		}

		var id int
		err := db.QueryRow(`
			INSERT INTO students (lrn, first_name, last_name, birth_date, gender, barangay_id, program_id, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, req.LRN, req.FirstName, req.LastName, req.BirthDate, req.Gender,
			req.BarangayID, req.ProgramID, status).Scan(&id)

		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "A student with LRN "+req.LRN+" already exists")
				return
			}
			zap.L().Error("Failed to create student", zap.Error(err))
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create student")
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]int{"id": id})
	}
}

func UpdateStudent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid student ID")
			return
		}

		var req models.StudentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		status := req.Status
		if status == "" {
			status = "enrolled"
		}

		result, err := db.Exec(`
			UPDATE students
			SET lrn = $1, first_name = $2, last_name = $3, birth_date = $4, gender = $5,
				barangay_id = $6, program_id = $7, status = $8, updated_at = NOW()
			WHERE id = $9
		`, req.LRN, req.FirstName, req.LastName, req.BirthDate, req.Gender,
			req.BarangayID, req.ProgramID, status, id)

		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "A student with LRN "+req.LRN+" already exists")
				return
			}
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update student")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Student not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Student updated successfully")
	}
}

func DeleteStudent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid student ID")
			return
		}

		result, err := db.Exec("DELETE FROM students WHERE id = $1", id)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete student")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Student not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Student deleted successfully")
	}
}
