package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the closed set of portal identities.
type Role string

const (
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
	// RoleAdmin is virtual: there is no persisted admin record, only a
	// fixed credential configured at boot.
	RoleAdmin Role = "Admin"
)

// Account is the view of a registrable user the credential workflow needs.
// Student and Faculty both implement it so one OTP state machine serves both.
type Account interface {
	AccountID() primitive.ObjectID
	SetAccountID(primitive.ObjectID)
	AccountEmail() string
	AccountRole() Role
	PasswordDigest() string
	SetPasswordDigest(string)
}
