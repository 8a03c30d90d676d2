package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"
	"als-tracker-api/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// RequestPasswordReset handles self-service reset submissions. Only regular
// admins may use it; master admins recover accounts through another channel.
// Resubmitting while a request is still pending is a no-op success.
func RequestPasswordReset(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if req.Email == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Email is required")
			return
		}

		var userID int
		var role models.Role
		err := db.QueryRow("SELECT id, role FROM users WHERE email = $1", req.Email).Scan(&userID, &role)
		if err != nil {
			if err == sql.ErrNoRows {
				responses.SendErrorResponse(w, http.StatusNotFound, "No account found for that email")
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if role != models.RoleAdmin {
			responses.SendErrorResponse(w, http.StatusForbidden, "Only admin accounts can request a password reset")
			return
		}

		var pendingID uuid.UUID
		err = db.QueryRow(`
			SELECT id FROM password_reset_requests
			WHERE user_id = $1 AND status = 'pending'
		`, userID).Scan(&pendingID)
		if err == nil {
			responses.SendMessageResponse(w, http.StatusOK, "A reset request is already pending approval")
			return
		}
		if err != sql.ErrNoRows {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		now := time.Now()
		_, err = db.Exec(`
			INSERT INTO password_reset_requests (id, user_id, email, role, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`, uuid.New(), userID, req.Email, role, models.ResetStatusPending, now)

		if err != nil {
			// The partial unique index catches the race where two submissions
			// pass the pending check together; the loser is the same no-op
			// success as the pre-check hit.
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendMessageResponse(w, http.StatusOK, "A reset request is already pending approval")
				return
			}
			zap.L().Error("Failed to create reset request",
				zap.Int("user_id", userID), zap.Error(err))
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to submit reset request")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Reset request submitted. Please wait for approval.")
	}
}

// PasswordResetStatus reports the latest request status plus the bypass
// grant. An unknown email reports the same "none" as a user with no request
// history, so the endpoint does not reveal which accounts exist.
func PasswordResetStatus(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if req.Email == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Email is required")
			return
		}

		var userID int
		var bypassApproved bool
		var bypassExpiresAt *time.Time
		err := db.QueryRow(`
			SELECT id, password_bypass_approved, password_bypass_expires_at
			FROM users WHERE email = $1
		`, req.Email).Scan(&userID, &bypassApproved, &bypassExpiresAt)

		if err != nil {
			if err == sql.ErrNoRows {
				responses.SendSuccessResponse(w, http.StatusOK, models.ResetStatusResponse{
					Status: models.ResetStatusNone,
				})
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		status := models.ResetStatusNone
		err = db.QueryRow(`
			SELECT status FROM password_reset_requests
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		`, userID).Scan(&status)
		if err != nil && err != sql.ErrNoRows {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, models.ResetStatusResponse{
			Status:          status,
			BypassApproved:  bypassActive(bypassApproved, bypassExpiresAt, time.Now()),
			BypassExpiresAt: bypassExpiresAt,
		})
	}
}

// bypassActive is the time-boxed bypass grant: the flag alone is not enough,
// the stored expiry must be strictly in the future.
func bypassActive(approved bool, expiresAt *time.Time, now time.Time) bool {
	return approved && expiresAt != nil && expiresAt.After(now)
}

func ListResetRequests(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT id, user_id, email, role, status, created_at, updated_at, resolved_at, resolved_by
			FROM password_reset_requests
		`
		args := []interface{}{}

		if status := r.URL.Query().Get("status"); status != "" {
			query += " WHERE status = $1"
			args = append(args, status)
		}

		query += " ORDER BY created_at DESC"

		rows, err := db.Query(query, args...)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch reset requests")
			return
		}
		defer rows.Close()

		requests := []models.PasswordResetRequest{}
		for rows.Next() {
			var req models.PasswordResetRequest
			err := rows.Scan(&req.ID, &req.UserID, &req.Email, &req.Role, &req.Status,
				&req.CreatedAt, &req.UpdatedAt, &req.ResolvedAt, &req.ResolvedBy)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan reset request")
				return
			}
			requests = append(requests, req)
		}

		responses.SendSuccessResponse(w, http.StatusOK, requests)
	}
}

func ApproveResetRequest(db *sql.DB) http.HandlerFunc {
	return resolveResetRequest(db, models.ResetStatusApproved)
}

func DenyResetRequest(db *sql.DB) http.HandlerFunc {
	return resolveResetRequest(db, models.ResetStatusDenied)
}

// resolveResetRequest moves a pending request to its terminal status and
// stamps who resolved it. Only pending rows transition; resolved rows conflict.
func resolveResetRequest(db *sql.DB, status models.ResetStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := uuid.Parse(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid reset request ID")
			return
		}

		claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		result, err := db.Exec(`
			UPDATE password_reset_requests
			SET status = $1, resolved_at = NOW(), resolved_by = $2, updated_at = NOW()
			WHERE id = $3 AND status = 'pending'
		`, status, claims.UserID, id)

		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to resolve reset request")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			var current models.ResetStatus
			err := db.QueryRow("SELECT status FROM password_reset_requests WHERE id = $1", id).Scan(&current)
			if err == sql.ErrNoRows {
				responses.SendErrorResponse(w, http.StatusNotFound, "Reset request not found")
			} else if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			} else {
				responses.SendErrorResponse(w, http.StatusConflict, "Reset request already "+string(current))
			}
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Reset request "+string(status))
	}
}
