package model

import (
	"time"
)

type ExamConfig struct {
	ExamTitle   string    `db:"exam_title" json:"examTitle"`
	ExamDate    time.Time `db:"exam_date" json:"examDate"`
	Description *string   `db:"description" json:"description,omitempty"`
	UpdatedBy   *string   `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type UpsertExamConfigParams struct {
	ExamTitle   string
	ExamDate    time.Time
	Description *string
	UpdatedBy   string
}
