package entities

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated identity handed over by the auth collaborator.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
