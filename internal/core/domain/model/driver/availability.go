package driver

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Availability is the self-declared working state of a driver. It is independent of the
// status of any order the driver carries.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	Offline   Availability = "offline"
)

func ParseAvailability(s string) (Availability, error) {
	a := Availability(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Availability) Validate() error {
	switch a {
	case Available, Busy, Offline:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("availability",
		fmt.Errorf("%q is not one of available, busy, offline", string(a)))
}

func (a Availability) String() string {
	return string(a)
}

const AvailabilityUpdatedMessage = "Driver status updated"

var availabilityMessages = map[Availability]string{
	Available: "Driver is now available",
	Busy:      "Driver is currently busy",
	Offline:   "Driver is offline",
}

// AvailabilityMessage returns the text announced when a driver switches to a.
func AvailabilityMessage(a Availability) string {
	if msg, ok := availabilityMessages[a]; ok {
		return msg
	}
	return AvailabilityUpdatedMessage
}
