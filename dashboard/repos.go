package dashboard

import (
	"net/http"
)

func (d *Dashboard) ListRepositories(w http.ResponseWriter, r *http.Request) {
	d.respond(w, "ListRepositories", http.StatusOK, list(d.r.ListRepositories()))
}

func (d *Dashboard) respond(w http.ResponseWriter, handler string, status int, body envelope) {
	if err := writeJson(w, status, body); err != nil {
		d.logger(handler).Error("failed to encode response", "error", err)
	}
}
