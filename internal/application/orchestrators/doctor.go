package orchestrators

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
)

// DefaultProbeTimeout bounds each doctor probe.
const DefaultProbeTimeout = 10 * time.Second

// DoctorDeps holds dependencies for the storage doctor.
type DoctorDeps struct {
	DB *docstore.DB

	// Timeout per probe; zero means DefaultProbeTimeout.
	Timeout time.Duration
}

// ProbeResult is the outcome of a single probe.
type ProbeResult struct {
	OK    bool   `json:"ok"`
	Kind  string `json:"kind,omitempty"` // storage error kind when not OK
	Error string `json:"error,omitempty"`
}

// DoctorReport summarizes storage health.
type DoctorReport struct {
	Read      ProbeResult `json:"read"`
	Write     ProbeResult `json:"write"`
	Documents int         `json:"documents"` // documents seen by the read probe
}

// ExecuteDoctor checks storage connectivity: a read probe lists the
// diagnostics collection, a write probe inserts and deletes a scratch
// document. Failures are classified by storage error kind so a timeout is
// distinguishable from a permission problem.
// POST: Returns a report; never returns an error, failures are in the report
func ExecuteDoctor(ctx context.Context, deps DoctorDeps) DoctorReport {
	timeout := deps.Timeout
	if timeout == 0 {
		timeout = DefaultProbeTimeout
	}

	var report DoctorReport

	readCtx, cancel := context.WithTimeout(ctx, timeout)
	docs, err := deps.DB.List(readCtx, storage.CollectionDiagnostics, docstore.ListOptions{})
	cancel()
	if err != nil {
		report.Read = probeFailure(err)
	} else {
		report.Read = ProbeResult{OK: true}
		report.Documents = len(docs)
	}

	writeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	report.Write = writeProbe(writeCtx, deps.DB)

	slog.Info("doctor_event", "event", "storage_checked", "read_ok", report.Read.OK, "write_ok", report.Write.OK)
	return report
}

func writeProbe(ctx context.Context, db *docstore.DB) ProbeResult {
	doc, err := json.Marshal(map[string]any{
		"test":      true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"message":   "storage write probe",
	})
	if err != nil {
		return ProbeResult{Error: err.Error()}
	}

	inserted, err := db.Insert(ctx, storage.CollectionDiagnostics, doc)
	if err != nil {
		return probeFailure(err)
	}
	if err := db.Delete(ctx, storage.CollectionDiagnostics, inserted.ID); err != nil {
		return probeFailure(err)
	}
	return ProbeResult{OK: true}
}

func probeFailure(err error) ProbeResult {
	return ProbeResult{
		Kind:  storage.KindOf(err).String(),
		Error: err.Error(),
	}
}
