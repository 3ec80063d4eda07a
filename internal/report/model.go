package report

import "time"

// Row is one feedback entry joined with its student and course.
type Row struct {
	FeedbackID  int64     `bun:"feedback_id" json:"feedback_id"`
	StudentID   int64     `bun:"student_id" json:"student_id"`
	StudentName string    `bun:"student_name" json:"student_name"`
	Email       string    `bun:"email" json:"email"`
	CourseID    int64     `bun:"course_id" json:"course_id"`
	CourseName  string    `bun:"course_name" json:"course_name"`
	FacultyName string    `bun:"faculty_name" json:"faculty_name"`
	Rating      int       `bun:"rating" json:"rating"`
	Comments    string    `bun:"comments" json:"comments"`
	CreatedAt   time.Time `bun:"created_at" json:"created_at"`
}
