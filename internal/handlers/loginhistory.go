package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/responses"
)

// loginHistoryLimit caps the history view at the most recent entries.
const loginHistoryLimit = 50

func GetLoginHistory(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := r.URL.Query().Get("userId")
		if rawID == "" {
			responses.SendErrorResponse(w, http.StatusBadRequest, "userId is required")
			return
		}

		userID, err := strconv.Atoi(rawID)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid userId")
			return
		}

		rows, err := db.Query(`
			SELECT id, user_id, email, device, browser, os, ip, login_at, created_at
			FROM login_logs
			WHERE user_id = $1
			ORDER BY login_at DESC
			LIMIT $2
		`, userID, loginHistoryLimit)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		logs := []models.LoginLog{}
		for rows.Next() {
			var entry models.LoginLog
			err := rows.Scan(&entry.ID, &entry.UserID, &entry.Email, &entry.Device,
				&entry.Browser, &entry.OS, &entry.IP, &entry.LoginAt, &entry.CreatedAt)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusInternalServerError, err.Error())
				return
			}
			logs = append(logs, entry)
		}

		responses.SendSuccessResponse(w, http.StatusOK, logs)
	}
}
