package exam

import "time"

type Doctor struct {
	ID           int64  `json:"doctor_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type Material struct {
	ID         int64  `json:"material_id"`
	Name       string `json:"material_name"`
	Code       string `json:"material_code"`
	Level      string `json:"level"`
	Department string `json:"department"`
	Term       int    `json:"term"` // 1 = first term, 2 = second term
	DoctorID   int64  `json:"doctor_id"`
}

type Topic struct {
	ID         int64  `json:"topic_id"`
	Name       string `json:"topic_name"`
	MaterialID int64  `json:"material_id"`
}

// Group is a reusable bundle of problems. When HasCommonHeader is set the
// CommonQuestionHeader is rendered once above the group's question run.
type Group struct {
	ID                   int64     `json:"group_id"`
	TopicID              int64     `json:"topic_id"`
	Name                 string    `json:"group_name"`
	CommonQuestionHeader string    `json:"common_question_header,omitempty"`
	HasCommonHeader      bool      `json:"has_common_header"`
	TotalProblems        int       `json:"total_problems"`
	MainDegree           int       `json:"main_degree"`
	Problems             []Problem `json:"problems,omitempty"`
}

type Problem struct {
	ID            int64           `json:"problem_id"`
	GroupID       int64           `json:"group_id"`
	Name          string          `json:"problem_name"`
	Header        string          `json:"problem_header"`
	ImagePath     string          `json:"problem_image_path,omitempty"`
	ChoicesNumber int             `json:"choices_number"`
	RightAnswer   int             `json:"right_answer"` // UnitOrder of the correct choice
	Shuffle       bool            `json:"shuffle"`
	MainDegree    int             `json:"main_degree"`
	Choices       []ProblemChoice `json:"choices,omitempty"`
}

type ProblemChoice struct {
	ID        int64  `json:"choice_id"`
	ProblemID int64  `json:"problem_id"`
	Text      string `json:"choice_text"`
	ImagePath string `json:"choice_image_path,omitempty"`
	UnitOrder int    `json:"unit_order"` // position within the problem before any shuffling
}

type Exam struct {
	ID             int64     `json:"exam_id"`
	MaterialID     int64     `json:"material_id"`
	Name           string    `json:"exam_name"`
	MainDegree     int       `json:"main_degree"`
	TotalProblems  int       `json:"total_problems"`
	Shuffle        bool      `json:"shuffle"`
	DurationMin    int       `json:"exam_duration"`
	Date           time.Time `json:"exam_date"`
	UniversityName string    `json:"university_name"`
	CollegeName    string    `json:"college_name"`

	Material *Material `json:"material,omitempty"`
}

// ExamUnit schedules a group within an exam. UnitOrder is identity-assigned
// and orders units within the exam before shuffling.
type ExamUnit struct {
	UnitOrder     int64 `json:"unit_order"`
	ExamID        int64 `json:"exam_id"`
	GroupID       int64 `json:"group_id"`
	MainDegree    int   `json:"main_degree"`
	TotalProblems int   `json:"total_problems"`
	Shuffle       bool  `json:"shuffle"`
	AllProblems   int   `json:"all_problems"`

	Exam  *Exam  `json:"exam,omitempty"`
	Group *Group `json:"group,omitempty"`
}
