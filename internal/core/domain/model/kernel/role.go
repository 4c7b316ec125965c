package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// Role is the closed set of actor kinds the service authorizes against.
// Switches over Role are expected to be exhaustive.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleDriver
	RoleStation
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUnknown:  "unknown",
	RoleCustomer: "customer",
	RoleDriver:   "driver",
	RoleStation:  "station",
	RoleAdmin:    "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

// ParseRole maps a textual role to Role. Unknown text is a validation error.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if role != RoleUnknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role")
}

// Actor identifies who performs an operation.
type Actor struct {
	ID   UUID
	Role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	if role == RoleUnknown {
		return Actor{}, errs.NewValueIsInvalidError("actor role")
	}
	return Actor{ID: id, Role: role}, nil
}

// Profile is the read-only view of a user supplied by the profile collaborator.
type Profile struct {
	ID       UUID
	Role     Role
	Name     string
	Region   string
	Phone    string
	Location *GeoPoint
}

func (p Profile) Actor() Actor {
	return Actor{ID: p.ID, Role: p.Role}
}

// HasRegion reports whether the profile carries a non-blank region.
func (p Profile) HasRegion() bool {
	return strings.TrimSpace(p.Region) != ""
}

// SameRegion compares two region names case-insensitively.
func SameRegion(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
