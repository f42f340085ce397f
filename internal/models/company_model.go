package models

import "time"

type Status string

const (
	StatusEntered      Status = "エントリー済み"
	StatusScreening    Status = "書類選考中"
	StatusInterviewing Status = "面接中"
	StatusOffer        Status = "内定"
	StatusRejected     Status = "不合格"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusEntered, StatusScreening, StatusInterviewing, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	DefaultStatus   = StatusEntered
	DefaultPriority = 3
	MinPriority     = 1
	MaxPriority     = 5
)

// Company é o registro de uma candidatura. Campos opcionais são ponteiros: nil = ausente.
type Company struct {
	ID          int64   `gorm:"primaryKey" bson:"_id" json:"id"`
	CompanyName string  `gorm:"size:200;not null;index" bson:"company_name" json:"company_name"`
	Industry    *string `gorm:"size:100" bson:"industry,omitempty" json:"industry"`
	JobType     *string `gorm:"size:100" bson:"job_type,omitempty" json:"job_type"`
	Location    *string `gorm:"size:200" bson:"location,omitempty" json:"location"`
	Salary      *string `gorm:"size:100" bson:"salary,omitempty" json:"salary"`

	Status   Status `gorm:"size:50;not null;index" bson:"status" json:"status"`
	Priority int    `gorm:"not null" bson:"priority" json:"priority"`

	ESDeadline        *string    `gorm:"column:es_deadline;size:10" bson:"es_deadline,omitempty" json:"es_deadline"` // YYYY-MM-DD
	ESSubmitted       bool       `gorm:"column:es_submitted;not null" bson:"es_submitted" json:"es_submitted"`
	InterviewCount    int        `gorm:"not null" bson:"interview_count" json:"interview_count"`
	NextInterviewDate *time.Time `bson:"next_interview_date,omitempty" json:"next_interview_date"`

	WebsiteURL     *string `gorm:"column:website_url;size:500" bson:"website_url,omitempty" json:"website_url"`
	RecruitURL     *string `gorm:"column:recruit_url;size:500" bson:"recruit_url,omitempty" json:"recruit_url"`
	MypageID       *string `gorm:"column:mypage_id;size:200" bson:"mypage_id,omitempty" json:"mypage_id"`
	MypagePassword *string `gorm:"column:mypage_password;size:200" bson:"mypage_password,omitempty" json:"mypage_password"`

	Notes          *string `gorm:"type:text" bson:"notes,omitempty" json:"notes"`
	InterviewNotes *string `gorm:"type:text" bson:"interview_notes,omitempty" json:"interview_notes"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

// Stars renders priority 1 (highest) as five stars and 5 as one.
func Stars(priority int) int {
	if priority < MinPriority {
		priority = MinPriority
	}
	if priority > MaxPriority {
		priority = MaxPriority
	}
	return MaxPriority + 1 - priority
}

type Statistics struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// CompanyInfo é a sugestão da IA; Error preenchido indica falha.
type CompanyInfo struct {
	Industry   *string `json:"industry"`
	JobType    *string `json:"job_type"`
	Location   *string `json:"location"`
	Salary     *string `json:"salary"`
	WebsiteURL *string `json:"website_url"`
	Error      *string `json:"error"`
}

func Ptr[T any](v T) *T { return &v }
