package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

type StudentRepository interface {
	FindByEmailAndDOB(ctx context.Context, email string, dob time.Time) (*model.Student, error)
	Create(ctx context.Context, params model.CreateStudentParams) (*model.Student, error)
}

type studentRepo struct {
	db sqlxDB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) FindByEmailAndDOB(ctx context.Context, email string, dob time.Time) (*model.Student, error) {
	var student model.Student
	err := r.db.GetContext(ctx, &student, `
		SELECT * FROM students
		WHERE lower(email) = lower($1) AND dob = $2::date
	`, email, dob.Format("2006-01-02"))
	return HandleNotFound(&student, err)
}

func (r *studentRepo) Create(ctx context.Context, params model.CreateStudentParams) (*model.Student, error) {
	var student model.Student
	err := r.db.GetContext(ctx, &student, `
		INSERT INTO students (
			email, dob, seat_number, student_name, course,
			test_center, exam_date, exam_time, serial_no
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`, params.Email, params.DOB.Format("2006-01-02"), params.SeatNumber, params.StudentName,
		params.Course, params.TestCenter, params.ExamDate, params.ExamTime, params.SerialNo)
	if err != nil {
		return nil, err
	}
	return &student, nil
}
