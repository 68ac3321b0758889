package model

import (
	"time"
)

// Student is the data printed on a hall ticket.
type Student struct {
	ID          string    `db:"id" json:"-"`
	Email       string    `db:"email" json:"email"`
	DOB         time.Time `db:"dob" json:"-"`
	SeatNumber  string    `db:"seat_number" json:"seatNumber"`
	StudentName string    `db:"student_name" json:"studentName"`
	Course      string    `db:"course" json:"course"`
	TestCenter  string    `db:"test_center" json:"testCenter"`
	ExamDate    string    `db:"exam_date" json:"examDate"`
	ExamTime    string    `db:"exam_time" json:"examTime"`
	SerialNo    string    `db:"serial_no" json:"serialNo"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

type CreateStudentParams struct {
	Email       string
	DOB         time.Time
	SeatNumber  string
	StudentName string
	Course      string
	TestCenter  string
	ExamDate    string
	ExamTime    string
	SerialNo    string
}
