package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"
	"als-tracker-api/internal/utils"

	"github.com/gorilla/mux"
)

// eventListLimit caps a progress feed at the most recent entries.
const eventListLimit = 100

func GetAllEvents(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT id, student_id, title, notes, event_type, recorded_by, occurred_at, created_at
			FROM progress_events
			WHERE 1=1
		`
		args := []interface{}{}
		argPos := 1

		if rawID := r.URL.Query().Get("studentId"); rawID != "" {
			studentID, err := strconv.Atoi(rawID)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid studentId")
				return
			}
			query += " AND student_id = $" + strconv.Itoa(argPos)
			args = append(args, studentID)
			argPos++
		}

		if eventType := r.URL.Query().Get("eventType"); eventType != "" {
			query += " AND event_type = $" + strconv.Itoa(argPos)
			args = append(args, eventType)
			argPos++
		}

		query += " ORDER BY occurred_at DESC LIMIT $" + strconv.Itoa(argPos)
		args = append(args, eventListLimit)

		rows, err := db.Query(query, args...)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch progress events")
			return
		}
		defer rows.Close()

		events := []models.ProgressEvent{}
		for rows.Next() {
			var e models.ProgressEvent
			err := rows.Scan(&e.ID, &e.StudentID, &e.Title, &e.Notes, &e.EventType,
				&e.RecordedBy, &e.OccurredAt, &e.CreatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan event data")
				return
			}
			events = append(events, e)
		}

		responses.SendSuccessResponse(w, http.StatusOK, events)
	}
}

func CreateEvent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		var req models.ProgressEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		var exists int
		err := db.QueryRow("SELECT id FROM students WHERE id = $1", req.StudentID).Scan(&exists)
		if err != nil {
			if err == sql.ErrNoRows {
				responses.SendErrorResponse(w, http.StatusNotFound, "Student not found")
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to check student")
			}
			return
		}

		occurredAt := time.Now()
		if req.OccurredAt != nil {
			occurredAt = *req.OccurredAt
		}

		var id int
		err = db.QueryRow(`
			INSERT INTO progress_events (student_id, title, notes, event_type, recorded_by, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, req.StudentID, req.Title, req.Notes, req.EventType, claims.UserID, occurredAt).Scan(&id)

		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create progress event")
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]int{"id": id})
	}
}

func DeleteEvent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid event ID")
			return
		}

		result, err := db.Exec("DELETE FROM progress_events WHERE id = $1", id)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete progress event")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "Progress event not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Progress event deleted successfully")
	}
}
