package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> OnTheWay ──> PickedUp ──> InProgress ──> Completed
//	   │           │                                       │
//	   └───────────┴──────────────> Cancelled <────────────┘
//
// Completed and Cancelled are terminal.
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	OnTheWay
	PickedUp
	InProgress
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Pending:    "pending",
	Accepted:   "accepted",
	OnTheWay:   "on_the_way",
	PickedUp:   "picked_up",
	InProgress: "in_progress",
	Completed:  "completed",
	Cancelled:  "cancelled",
}

//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
var transitions = map[Status][]Status{
	Pending:    {Accepted, Cancelled},
	Accepted:   {OnTheWay, Cancelled},
	OnTheWay:   {PickedUp},
	PickedUp:   {InProgress},
	InProgress: {Completed, Cancelled},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Accepted, OnTheWay, PickedUp, InProgress, Completed, Cancelled}
}

// ParseStatus maps the persisted or wire name of a status back to Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// CanTransitionTo reports whether the lifecycle table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	allowed := make([]Status, len(transitions[s]))
	copy(allowed, transitions[s])
	return allowed
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// RequiresDriver reports whether an order in this status must carry a driver.
func (s Status) RequiresDriver() bool {
	switch s {
	case Accepted, OnTheWay, PickedUp, InProgress, Completed:
		return true
	case Unknown, Pending, Cancelled:
		return false
	}
	return false
}

// ValidateDriver checks the consistency between the status and driver assignment.
func (s Status) ValidateDriver(hasDriver bool) error {
	if hasDriver && !s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s is not a valid status to have a driver", s))
	}
	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s is not a valid status to have no driver", s))
	}
	return nil
}
