package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyAttendance is a single day inside a monthly summary.
type DailyAttendance struct {
	Date   string `bson:"date" json:"date"`
	Status string `bson:"status" json:"status"` // Present | Absent
}

// AttendanceSummary is the per-month attendance sub-document embedded in a
// student profile.
type AttendanceSummary struct {
	Month            string            `bson:"month" json:"month"`
	Year             int               `bson:"year" json:"year"`
	TotalClasses     int               `bson:"totalClasses" json:"total_classes"`
	AttendedClasses  int               `bson:"attendedClasses" json:"attended_classes"`
	Percentage       float64           `bson:"attendancePercentage" json:"attendance_percentage"`
	RecentAttendance []DailyAttendance `bson:"recentAttendance" json:"recent_attendance"`
}

// Result is a published exam result embedded in a student profile.
type Result struct {
	CourseCode string  `bson:"courseCode" json:"course_code"`
	Semester   string  `bson:"semester" json:"semester"`
	Grade      string  `bson:"grade" json:"grade"`
	Points     float64 `bson:"points" json:"points"`
}

// Notification is an in-profile notification entry.
type Notification struct {
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	Read      bool      `bson:"read" json:"read"`
}

// Student is a persisted student record. The password digest is never
// serialized to JSON.
type Student struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"fName" json:"name"`
	Username         string              `bson:"username" json:"username"`
	Email            string              `bson:"email" json:"email"`
	Password         string              `bson:"password" json:"-"`
	CollegeRoll      string              `bson:"collegeRoll" json:"college_roll"`
	ProfilePhoto     string              `bson:"profilePhoto" json:"profile_photo"`
	CoverPhoto       string              `bson:"cover" json:"cover_photo"`
	Phone            string              `bson:"phone" json:"phone"`
	BloodGroup       string              `bson:"bloodGroup" json:"blood_group"`
	Location         string              `bson:"location" json:"location"`
	DateOfBirth      string              `bson:"dateOfBirth" json:"date_of_birth"`
	Bio              string              `bson:"bio" json:"bio"`
	Role             Role                `bson:"role" json:"role"`
	Skills           []string            `bson:"skills" json:"skills"`
	Certifications   []string            `bson:"certifications" json:"certifications"`
	Department       string              `bson:"department" json:"department"`
	Session          string              `bson:"session" json:"session"`
	RegistrationNo   string              `bson:"registrationNumber" json:"registration_number"`
	InterestedFields []string            `bson:"interestedFields" json:"interested_fields"`
	Results          []Result            `bson:"results" json:"results"`
	Notifications    []Notification      `bson:"notifications" json:"notifications"`
	Attendance       []AttendanceSummary `bson:"attendance" json:"attendance"`
	CreatedAt        time.Time           `bson:"createdAt" json:"created_at"`
}

func (s *Student) AccountID() primitive.ObjectID      { return s.ID }
func (s *Student) SetAccountID(id primitive.ObjectID) { s.ID = id }
func (s *Student) AccountEmail() string               { return s.Email }
func (s *Student) AccountRole() Role                  { return RoleStudent }
func (s *Student) PasswordDigest() string             { return s.Password }
func (s *Student) SetPasswordDigest(hash string)      { s.Password = hash }

// SeedDefaults fills the slices and the first-month attendance summary a
// freshly verified student starts with.
func (s *Student) SeedDefaults(now time.Time) {
	s.Role = RoleStudent
	s.CreatedAt = now
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if s.Certifications == nil {
		s.Certifications = []string{}
	}
	if s.InterestedFields == nil {
		s.InterestedFields = []string{}
	}
	s.Results = []Result{}
	s.Notifications = []Notification{}
	s.Attendance = []AttendanceSummary{
		{
			Month:            now.Month().String(),
			Year:             now.Year(),
			RecentAttendance: []DailyAttendance{},
		},
	}
}

// RegisterStudentRequest is the payload to start a student registration.
type RegisterStudentRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Username     string `json:"username" binding:"required,min=3,max=30"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
	CollegeRoll  string `json:"college_roll" binding:"required"`
	ProfilePhoto string `json:"profile_photo" binding:"required"`
}

// UpdateStudentProfileRequest carries the mutable profile fields; only
// non-empty values are applied.
type UpdateStudentProfileRequest struct {
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	Phone          string   `json:"phone"`
	BloodGroup     string   `json:"blood_group"`
	Location       string   `json:"location"`
	DateOfBirth    string   `json:"date_of_birth"`
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Department     string   `json:"department"`
	Session        string   `json:"session"`
	RegistrationNo string   `json:"registration_number"`
	ProfilePhoto   string   `json:"profile_photo"`
	CoverPhoto     string   `json:"cover_photo"`
}
