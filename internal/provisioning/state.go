package provisioning

import (
	"fmt"

	"github.com/imamik/clusterstage/internal/artifacts"
)

// Status is the lifecycle position of a single provisioning attempt.
//
//	Start --bucket created--> BucketReady --uploads ok--> Provisioned
//	Start --create failed--> Failed
//	BucketReady --upload failed--> Cleaning --delete attempted--> Failed
type Status string

const (
	StatusStart       Status = "start"
	StatusBucketReady Status = "bucket-ready"
	StatusProvisioned Status = "provisioned"
	StatusCleaning    Status = "cleaning"
	StatusFailed      Status = "failed"
)

var transitions = map[Status][]Status{
	StatusStart:       {StatusBucketReady, StatusProvisioned, StatusFailed},
	StatusBucketReady: {StatusProvisioned, StatusCleaning},
	StatusCleaning:    {StatusFailed},
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusProvisioned || s == StatusFailed
}

// State holds the results of the provisioning phases of one attempt.
// It is progressively populated as each phase completes.
type State struct {
	// Directories is the resolved artifact set (populated by the resolve phase).
	Directories artifacts.Set

	// Bucket is the staging bucket name, set once creation succeeded.
	Bucket string

	// Status is the lifecycle position; see Status.
	Status Status

	// History lists every status the attempt has been in, in order.
	History []Status
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{Status: StatusStart, History: []Status{StatusStart}}
}

// Transition moves the attempt to next, rejecting moves the lifecycle does not allow.
func (s *State) Transition(next Status) error {
	for _, allowed := range transitions[s.Status] {
		if allowed == next {
			s.Status = next
			s.History = append(s.History, next)
			return nil
		}
	}
	return fmt.Errorf("invalid status transition %s -> %s", s.Status, next)
}
