package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a student-submitted feedback entry.
type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"studentId" json:"student_id"`
	StudentName string             `bson:"studentName" json:"student_name"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment" json:"comment"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}

// SubmitFeedbackRequest is the payload for posting feedback.
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=3,max=2000"`
}
