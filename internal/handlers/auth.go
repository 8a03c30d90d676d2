package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"
	"als-tracker-api/internal/useragent"
	"als-tracker-api/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func Login(db *sql.DB, jwtUtil *utils.JWTUtil) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if creds.Email == "" || creds.Password == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		var user models.User
		err := db.QueryRow(`
			SELECT id, name, email, password, role, barangay_id, is_active
			FROM users WHERE email = $1
		`, creds.Email).Scan(
			&user.ID, &user.Name, &user.Email, &user.Password,
			&user.Role, &user.BarangayID, &user.IsActive,
		)

		if err != nil {
			if err == sql.ErrNoRows {
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if !user.IsActive {
			responses.SendErrorResponse(w, http.StatusForbidden, "Account is deactivated")
			return
		}

		token, err := jwtUtil.GenerateToken(user.ID, user.Role)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		recordLogin(db, &user, r)

		userResponse := models.UserResponse{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			BarangayID: user.BarangayID,
			IsActive:   user.IsActive,
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  userResponse,
		})
	}
}

// recordLogin appends to login_logs. A failed append never blocks the login
// itself, the history is best effort.
func recordLogin(db *sql.DB, user *models.User, r *http.Request) {
	info := useragent.Parse(r.UserAgent())

	_, err := db.Exec(`
		INSERT INTO login_logs (user_id, email, device, browser, os, ip, login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, info.Device, info.Browser, info.OS, clientIP(r), time.Now())

	if err != nil {
		zap.L().Warn("Failed to record login",
			zap.Int("user_id", user.ID), zap.Error(err))
	}
}

func Register(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		var id int
		err = db.QueryRow(`
			INSERT INTO users (name, email, password, role, barangay_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, req.Name, req.Email, string(hashedPassword), req.Role, req.BarangayID).Scan(&id)

		if err != nil {
			zap.L().Error("Database error during registration", zap.Error(err))

			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				responses.SendErrorResponse(w, http.StatusConflict, "Email already exists")
			} else {
				responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create user: "+err.Error())
			}
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]int{"id": id})
	}
}
