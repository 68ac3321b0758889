package model

import (
	"time"
)

type Announcement struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	ExamDate  string    `db:"exam_date" json:"examDate"`
	CreatedBy *string   `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateAnnouncementParams struct {
	Title     string
	Content   string
	ExamDate  string
	CreatedBy string
}
