package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStatus marks whether a course is open for the running semester.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "Active"
	CourseStatusArchived CourseStatus = "Archived"
)

// Course is a persisted university course.
type Course struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"courseName" json:"name"`
	Code            string             `bson:"courseCode" json:"code"`
	Department      string             `bson:"department" json:"department"`
	Description     string             `bson:"description" json:"description"`
	Credits         int                `bson:"credits" json:"credits"`
	CreditsDetails  string             `bson:"creditsDetails" json:"credits_details"`
	FacultyAssigned primitive.ObjectID `bson:"facultyAssigned" json:"faculty_assigned"`
	Semester        string             `bson:"semester" json:"semester"`
	Schedule        string             `bson:"schedule" json:"schedule"`
	AvailableSeats  int                `bson:"availableSeats" json:"available_seats"`
	ClassTimes      []string           `bson:"classTimes" json:"class_times"`
	Status          CourseStatus       `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code" binding:"required"`
	Department      string   `json:"department" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Credits         int      `json:"credits" binding:"required,min=1"`
	CreditsDetails  string   `json:"credits_details" binding:"required"`
	FacultyAssigned string   `json:"faculty_assigned" binding:"required"`
	Semester        string   `json:"semester" binding:"required"`
	Schedule        string   `json:"schedule" binding:"required"`
	AvailableSeats  int      `json:"available_seats" binding:"min=0"`
	ClassTimes      []string `json:"class_times" binding:"required"`
}

// UpdateCourseRequest is the payload for replacing a course's fields.
type UpdateCourseRequest struct {
	Name            string   `json:"name" binding:"required"`
	Department      string   `json:"department" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Credits         int      `json:"credits" binding:"required,min=1"`
	CreditsDetails  string   `json:"credits_details" binding:"required"`
	FacultyAssigned string   `json:"faculty_assigned" binding:"required"`
	Semester        string   `json:"semester" binding:"required"`
	Schedule        string   `json:"schedule" binding:"required"`
	AvailableSeats  int      `json:"available_seats" binding:"min=0"`
	ClassTimes      []string `json:"class_times" binding:"required"`
	Status          string   `json:"status" binding:"required,oneof=Active Archived"`
}
