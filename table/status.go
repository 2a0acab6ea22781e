package table

import "time"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// Status tells the operator how the last load went.
type Status struct {
	Phase    Phase     `json:"phase"`
	Error    string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
	Records  int       `json:"records"`
	Attempts int       `json:"attempts,omitempty"`
}
