package validation

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest only looks at email and password; other keys are ignored.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (*LoginRequest) allowsUnknownFields() {}

type CollegeRequest struct {
	Name string `json:"name" validate:"required"`
	City string `json:"city" validate:"required"`
}

type CityRequest struct {
	CityName string `json:"cityName" validate:"required"`
}

type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	ExamDate string `json:"examDate" validate:"required,isodate"`
}

type ExamConfigRequest struct {
	ExamTitle   string  `json:"examTitle" validate:"required"`
	ExamDate    string  `json:"examDate" validate:"required,isodate"`
	Description *string `json:"description,omitempty"`
}

type StudentRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DOB         string `json:"dob" validate:"required,dob"`
	SeatNumber  string `json:"seatNumber" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Course      string `json:"course" validate:"required"`
	TestCenter  string `json:"testCenter" validate:"required"`
	ExamDate    string `json:"examDate" validate:"required"`
	ExamTime    string `json:"examTime" validate:"required"`
	SerialNo    string `json:"serialNo" validate:"required"`
}

type HallTicketRequest struct {
	Email string `json:"email" validate:"required,email"`
	DOB   string `json:"dob" validate:"required,dob"`
}

type ApproveRequest struct {
	IsApproved *bool `json:"isApproved,omitempty"`
}
