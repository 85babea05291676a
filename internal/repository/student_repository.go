package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/model"
)

// StudentRepository handles student document access.
type StudentRepository struct {
	col *mongo.Collection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(database.CollectionStudents)}
}

// GetByEmail retrieves a student by their unique email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var s model.Student
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &s, nil
}

// UsernameTaken reports whether a student already holds the username.
func (r *StudentRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"username": username}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return true, nil
}

// EmailTaken reports whether a student already holds the email.
func (r *StudentRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// List retrieves all students.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	students := []model.Student{}
	if err := cur.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// UpdateProfile applies the patch to the student matched by email and
// returns the updated document.
func (r *StudentRepository) UpdateProfile(ctx context.Context, email string, patch bson.M) (*model.Student, error) {
	var s model.Student
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update student profile: %w", err)
	}
	return &s, nil
}

// DeleteByID removes a student document. Returns ErrNotFound when no
// document matched.
func (r *StudentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByEmail satisfies AccountStore for the shared credential workflow.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	s, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Insert persists a finalized student record and returns its generated id.
func (r *StudentRepository) Insert(ctx context.Context, acct model.Account) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, acct)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicate
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert student: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert student: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

// UpdatePasswordByEmail replaces the stored password digest.
func (r *StudentRepository) UpdatePasswordByEmail(ctx context.Context, email, hash string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("update student password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
