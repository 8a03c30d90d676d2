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
	"go.uber.org/zap"
)

func GetAllUsers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT id, name, email, role, barangay_id, is_active, created_at, updated_at
			FROM users
			ORDER BY name ASC
		`)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		defer rows.Close()

		users := []models.User{}
		for rows.Next() {
			var user models.User
			err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role,
				&user.BarangayID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to scan user data")
				return
			}
			users = append(users, user)
		}

		responses.SendSuccessResponse(w, http.StatusOK, users)
	}
}

// UpdateUser handles role assignment, barangay assignment and deactivation.
// Accounts are never hard-deleted.
func UpdateUser(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		query := "UPDATE users SET updated_at = NOW()"
		args := []interface{}{}
		argPos := 1

		if req.Role != nil {
			query += ", role = $" + strconv.Itoa(argPos)
			args = append(args, *req.Role)
			argPos++
		}
		if req.BarangayID != nil {
			query += ", barangay_id = $" + strconv.Itoa(argPos)
			args = append(args, *req.BarangayID)
			argPos++
		}
		if req.IsActive != nil {
			query += ", is_active = $" + strconv.Itoa(argPos)
			args = append(args, *req.IsActive)
			argPos++
		}

		query += " WHERE id = $" + strconv.Itoa(argPos)
		args = append(args, id)

		result, err := db.Exec(query, args...)
		if err != nil {
			zap.L().Error("Failed to update user", zap.Int("user_id", id), zap.Error(err))
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "User updated successfully")
	}
}

// GrantBypass sets the time-boxed reset bypass on a user. The grant is
// independent of any reset request and expires on its own.
func GrantBypass(db *sql.DB, defaultTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		ttl := defaultTTL
		var req models.BypassGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.TTL != "" {
			parsed, err := time.ParseDuration(req.TTL)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid ttl format. Use format like '24h'")
				return
			}
			ttl = parsed
		}

		expiresAt := time.Now().Add(ttl)
		result, err := db.Exec(`
			UPDATE users
			SET password_bypass_approved = true, password_bypass_expires_at = $1, updated_at = NOW()
			WHERE id = $2
		`, expiresAt, id)

		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to grant bypass")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"bypassExpiresAt": expiresAt,
		})
	}
}

func RevokeBypass(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		result, err := db.Exec(`
			UPDATE users
			SET password_bypass_approved = false, password_bypass_expires_at = NULL, updated_at = NOW()
			WHERE id = $1
		`, id)

		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to revoke bypass")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			responses.SendErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}

		responses.SendMessageResponse(w, http.StatusOK, "Bypass revoked")
	}
}
