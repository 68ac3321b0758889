package service

import (
	"context"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/util"
)

const msgInvalidStudent = "Invalid student details"

// HallTicket is the public view returned to a student.
type HallTicket struct {
	SeatNumber  string `json:"seatNumber"`
	StudentName string `json:"studentName"`
	Course      string `json:"course"`
	TestCenter  string `json:"testCenter"`
	ExamDate    string `json:"examDate"`
	ExamTime    string `json:"examTime"`
	SerialNo    string `json:"serialNo"`
	Email       string `json:"email"`
	DOB         string `json:"dob"`
}

func newHallTicket(s *model.Student) *HallTicket {
	return &HallTicket{
		SeatNumber:  s.SeatNumber,
		StudentName: s.StudentName,
		Course:      s.Course,
		TestCenter:  s.TestCenter,
		ExamDate:    s.ExamDate,
		ExamTime:    s.ExamTime,
		SerialNo:    s.SerialNo,
		Email:       s.Email,
		DOB:         util.FormatDOB(s.DOB),
	}
}

type StudentInput struct {
	Email       string
	DOB         string
	SeatNumber  string
	StudentName string
	Course      string
	TestCenter  string
	ExamDate    string
	ExamTime    string
	SerialNo    string
}

type HallTicketService struct {
	studentRepo repository.StudentRepository
}

func NewHallTicketService(studentRepo repository.StudentRepository) *HallTicketService {
	return &HallTicketService{studentRepo: studentRepo}
}

// Lookup finds the hall ticket for an email and date of birth. Any
// mismatch yields the same not-found error.
func (s *HallTicketService) Lookup(ctx context.Context, email, dob string) (*HallTicket, error) {
	date, err := util.ParseDOB(dob)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, msgInvalidStudent)
	}

	student, err := s.studentRepo.FindByEmailAndDOB(ctx, email, date)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if student == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, msgInvalidStudent)
	}
	return newHallTicket(student), nil
}

// Register stores a student record that hall tickets are served from.
func (s *HallTicketService) Register(ctx context.Context, in StudentInput) (*HallTicket, error) {
	date, err := util.ParseDOB(in.DOB)
	if err != nil {
		return nil, apperrors.ValidationError(`"dob" must be a valid date of birth (DD-MM-YYYY)`)
	}

	student, err := s.studentRepo.Create(ctx, model.CreateStudentParams{
		Email:       in.Email,
		DOB:         date,
		SeatNumber:  in.SeatNumber,
		StudentName: in.StudentName,
		Course:      in.Course,
		TestCenter:  in.TestCenter,
		ExamDate:    in.ExamDate,
		ExamTime:    in.ExamTime,
		SerialNo:    in.SerialNo,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Student with this seat number or email and date of birth already exists")
		}
		return nil, apperrors.Database(err)
	}
	return newHallTicket(student), nil
}
