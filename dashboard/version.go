package dashboard

import (
	"net/http"

	"github.com/carlmjohnson/versioninfo"
)

type versionOutput struct {
	Version string `json:"version"`
}

func (d *Dashboard) Version(w http.ResponseWriter, r *http.Request) {
	if err := writeJson(w, http.StatusOK, versionOutput{Version: versioninfo.Short()}); err != nil {
		d.logger("Version").Error("failed to encode response", "error", err)
	}
}
