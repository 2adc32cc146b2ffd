package dashboard

import (
	"net/http"
)

// Stats and Compliance serve fixed snapshots; they are not derived from
// the workflow collection.

func (d *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	d.respond(w, "Stats", http.StatusOK, ok(d.r.Stats()))
}

func (d *Dashboard) Compliance(w http.ResponseWriter, r *http.Request) {
	d.respond(w, "Compliance", http.StatusOK, ok(d.r.Compliance()))
}
