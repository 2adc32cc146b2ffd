package dashboard

import (
	"encoding/json"
	"net/http"
)

// ConnectGitHub stands in for the OAuth exchange: whatever the client
// sends, the same account is reported as connected.
func (d *Dashboard) ConnectGitHub(w http.ResponseWriter, r *http.Request) {
	l := d.logger("ConnectGitHub")

	var credentials any
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		l.Debug("ignoring unreadable credentials", "error", err)
	}

	conn := d.r.Connect(credentials)
	l.Info("account connected", "username", conn.Username)

	d.respond(w, "ConnectGitHub", http.StatusOK, envelope{
		Success: true,
		Message: "GitHub account connected successfully",
		Data:    conn,
	})
}
