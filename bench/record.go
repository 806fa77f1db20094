package bench

import (
	"time"
)

// Op identifies which tree operation a measurement covers.
type Op string

// The three measured operations of one trial.
const (
	OpBuild  Op = "build"
	OpProve  Op = "prove"
	OpVerify Op = "verify"
)

// Record is one timed trial observation. Records are append-only and
// immutable once written; the harness owns their collection for the
// duration of one run. A failed trial carries the failure text in Err
// and its Elapsed is meaningless.
type Record struct {
	Algorithm string        `json:"algorithm" msgpack:"algorithm"`
	Op        Op            `json:"op" msgpack:"op"`
	LeafCount int           `json:"leaf_count" msgpack:"leaf_count"`
	Trial     int           `json:"trial" msgpack:"trial"`
	Elapsed   time.Duration `json:"elapsed_ns" msgpack:"elapsed_ns"`
	Err       string        `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Failed reports whether the trial behind this record completed.
func (r Record) Failed() bool {
	return r.Err != ""
}
