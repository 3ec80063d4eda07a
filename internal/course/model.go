package course

import "github.com/uptrace/bun"

type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID          int64  `bun:"course_id,pk,autoincrement" json:"course_id"`
	Name        string `bun:"course_name,notnull" json:"course_name" validate:"required,storedtext,max=200"`
	FacultyName string `bun:"faculty_name,notnull" json:"faculty_name" validate:"required,storedtext,max=200"`
}
