package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus is the outcome of a single class session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// AttendanceRecord is one marked class session for one student.
type AttendanceRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID  primitive.ObjectID `bson:"courseId" json:"course_id"`
	StudentID primitive.ObjectID `bson:"studentId" json:"student_id"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    AttendanceStatus   `bson:"status" json:"status"`
	MarkedBy  primitive.ObjectID `bson:"markedBy" json:"marked_by"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// MarkAttendanceRequest records attendance for one student in one session.
type MarkAttendanceRequest struct {
	CourseID  string `json:"course_id" binding:"required"`
	StudentID string `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Status    string `json:"status" binding:"required,oneof=Present Absent"`
}

// UpdateAttendanceRequest corrects a previously marked session.
type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=Present Absent"`
}
