package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduport/eduport-backend/internal/model"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when an insert collides with a unique index.
var ErrDuplicate = errors.New("document already exists")

// AccountStore is the per-collection persistence contract the credential
// workflow runs against. Student and faculty repositories both satisfy it,
// which lets one OTP state machine serve both roles.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	Insert(ctx context.Context, acct model.Account) (primitive.ObjectID, error)
	UpdatePasswordByEmail(ctx context.Context, email, hash string) error
}
