package feedback

import (
	"time"

	"github.com/uptrace/bun"
)

// uniqueStudentCourse names the constraint that allows one entry per (student, course).
const uniqueStudentCourse = "feedback_student_course"

type Feedback struct {
	bun.BaseModel `bun:"table:feedback,alias:f"`

	ID        int64     `bun:"feedback_id,pk,autoincrement" json:"feedback_id"`
	StudentID int64     `bun:"student_id,notnull,unique:feedback_student_course" json:"student_id"`
	CourseID  int64     `bun:"course_id,notnull,unique:feedback_student_course" json:"course_id"`
	Rating    int       `bun:"rating,notnull" json:"rating"`
	Comments  string    `bun:"comments,nullzero" json:"comments,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

func (*Feedback) ForeignKeys() []string {
	return []string{
		`("student_id") REFERENCES "students" ("student_id")`,
		`("course_id") REFERENCES "courses" ("course_id")`,
	}
}

// SubmitRequest is the feedback form. StudentID always comes from the session.
type SubmitRequest struct {
	StudentID int64  `json:"-" form:"-" validate:"required,gt=0"`
	CourseID  int64  `json:"course_id" form:"course_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comments  string `json:"comments" form:"comments" validate:"storedtext,max=2000"`
}

type SubmitResponse struct {
	FeedbackID int64 `json:"feedback_id"`
}

// SubmittedEvent is published after a feedback entry is committed.
type SubmittedEvent struct {
	FeedbackID int64     `json:"feedback_id"`
	StudentID  int64     `json:"student_id"`
	CourseID   int64     `json:"course_id"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
