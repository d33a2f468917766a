package benchmark

import "time"

// Phase names, in the order the Driver runs them.
const (
	PhaseCPUSingle    = "cpu-single"
	PhaseCPUMulti     = "cpu-multi"
	PhaseMemory       = "memory"
	PhaseDisk         = "disk"
	PhaseCallOverhead = "call-overhead"
	PhaseMatrix       = "matrix"
)

// Result holds the measurement of one benchmark phase.
type Result struct {
	Phase     string        `json:"phase"`
	Label     string        `json:"label"`
	Available bool          `json:"available"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Work      float64       `json:"work"` // Amount of work done, in Unit
	Unit      string        `json:"unit"`
	Note      string        `json:"note,omitempty"`
}

// Seconds returns the elapsed time in seconds.
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Throughput returns Work per second, or 0 when nothing was timed.
func (r Result) Throughput() float64 {
	if !r.Available || r.Elapsed <= 0 {
		return 0
	}
	return r.Work / r.Elapsed.Seconds()
}

// Summary is the outcome of one Driver run.
type Summary struct {
	RunID     string        `json:"run_id"`
	GoVersion string        `json:"go_version"`
	CPUCores  int           `json:"cpu_cores"`
	Tier      Tier          `json:"tier"`
	Workers   int           `json:"workers"`
	Matrix    string        `json:"matrix"`
	Results   []Result      `json:"results"`
	Total     time.Duration `json:"total_ns"`
}
