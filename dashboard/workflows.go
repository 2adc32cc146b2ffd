package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"qythex.dev/core/registry"
)

func (d *Dashboard) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	d.respond(w, "ListWorkflows", http.StatusOK, list(d.r.ListWorkflows()))
}

func (d *Dashboard) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	l := d.logger("CreateWorkflow")
	fail := func(err error) {
		l.Error("failed", "error", err)
		writeError(w, err, statusFor(err))
	}

	var in registry.WorkflowInput
	dec := json.NewDecoder(r.Body)
	// numbers are echoed back exactly as sent
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		err = fmt.Errorf("invalid request body: %w", err)
		l.Error("failed", "error", err)
		writeError(w, err, http.StatusBadRequest)
		return
	}

	wf, err := d.r.CreateWorkflow(in)
	if err != nil {
		fail(err)
		return
	}

	l.Info("workflow created", "id", wf.Id, "repo", wf.Repo, "trigger", wf.Trigger)
	d.t.WorkflowEvent(r.Context(), string(registry.EventWorkflowCreated))
	d.respond(w, "CreateWorkflow", http.StatusCreated, envelope{
		Success: true,
		Data:    wf,
		Message: "Workflow created successfully",
	})
}

func (d *Dashboard) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	l := d.logger("RunWorkflow")
	raw := chi.URLParam(r, "id")
	fail := func(err error) {
		l.Error("failed", "id", raw, "error", err)
		writeError(w, err, statusFor(err))
	}

	// non-numeric ids cannot name a workflow
	id, err := strconv.Atoi(raw)
	if err != nil {
		fail(&registry.NotFoundError{})
		return
	}

	wf, err := d.r.RunWorkflow(id)
	if err != nil {
		fail(err)
		return
	}

	l.Info("workflow started", "id", wf.Id)
	d.t.WorkflowEvent(r.Context(), string(registry.EventWorkflowRun))
	d.respond(w, "RunWorkflow", http.StatusOK, envelope{
		Success: true,
		Data:    wf,
		Message: "Workflow started successfully",
	})
}
