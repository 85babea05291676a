package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Faculty is a persisted faculty record.
type Faculty struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"facultyName" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	FacultyID     string             `bson:"facultyId" json:"faculty_id"`
	Photo         string             `bson:"photo" json:"photo"`
	Phone         string             `bson:"phone" json:"phone"`
	Slogan        string             `bson:"slogan" json:"slogan"`
	Department    string             `bson:"department" json:"department"`
	Publications  []string           `bson:"publications" json:"publications"`
	Notifications []Notification     `bson:"notifications" json:"notifications"`
	Role          Role               `bson:"role" json:"role"`
	TotalStudents int                `bson:"totalStudents" json:"total_students"`
	JoiningDate   time.Time          `bson:"joiningDate" json:"joining_date"`
}

func (f *Faculty) AccountID() primitive.ObjectID      { return f.ID }
func (f *Faculty) SetAccountID(id primitive.ObjectID) { f.ID = id }
func (f *Faculty) AccountEmail() string               { return f.Email }
func (f *Faculty) AccountRole() Role                  { return RoleFaculty }
func (f *Faculty) PasswordDigest() string             { return f.Password }
func (f *Faculty) SetPasswordDigest(hash string)      { f.Password = hash }

// SeedDefaults fills the slices and joining date a freshly verified faculty
// record starts with.
func (f *Faculty) SeedDefaults(now time.Time) {
	f.Role = RoleFaculty
	f.JoiningDate = now
	if f.Publications == nil {
		f.Publications = []string{}
	}
	f.Notifications = []Notification{}
}

// RegisterFacultyRequest is the payload to start a faculty registration.
type RegisterFacultyRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FacultyID string `json:"faculty_id" binding:"required"`
	Photo     string `json:"photo" binding:"required"`
}
