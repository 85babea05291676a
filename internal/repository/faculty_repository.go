package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/model"
)

// FacultyRepository handles faculty document access.
type FacultyRepository struct {
	col *mongo.Collection
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(db *mongo.Database) *FacultyRepository {
	return &FacultyRepository{col: db.Collection(database.CollectionFaculties)}
}

// GetByEmail retrieves a faculty member by their unique email.
func (r *FacultyRepository) GetByEmail(ctx context.Context, email string) (*model.Faculty, error) {
	var f model.Faculty
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find faculty: %w", err)
	}
	return &f, nil
}

// List retrieves all faculty members.
func (r *FacultyRepository) List(ctx context.Context) ([]model.Faculty, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	faculties := []model.Faculty{}
	if err := cur.All(ctx, &faculties); err != nil {
		return nil, fmt.Errorf("decode faculties: %w", err)
	}
	return faculties, nil
}

// DeleteByID removes a faculty document. Returns ErrNotFound when no
// document matched.
func (r *FacultyRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByEmail satisfies AccountStore for the shared credential workflow.
func (r *FacultyRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	f, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Insert persists a finalized faculty record and returns its generated id.
func (r *FacultyRepository) Insert(ctx context.Context, acct model.Account) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, acct)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicate
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert faculty: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert faculty: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

// UpdatePasswordByEmail replaces the stored password digest.
func (r *FacultyRepository) UpdatePasswordByEmail(ctx context.Context, email, hash string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("update faculty password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
