package models

// CompanyCreate: somente company_name é obrigatório; ausentes recebem o default do servidor.
type CompanyCreate struct {
	CompanyName string  `json:"company_name" validate:"required,max=200"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	JobType     *string `json:"job_type,omitempty" validate:"omitempty,max=100"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Salary      *string `json:"salary,omitempty" validate:"omitempty,max=100"`

	Status   *Status `json:"status,omitempty" validate:"omitempty,company_status"`
	Priority *int    `json:"priority,omitempty" validate:"omitempty,min=1,max=5"`

	ESDeadline        *string `json:"es_deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ESSubmitted       *bool   `json:"es_submitted,omitempty"`
	InterviewCount    *int    `json:"interview_count,omitempty" validate:"omitempty,min=0"`
	NextInterviewDate *string `json:"next_interview_date,omitempty" validate:"omitempty,interview_time"`

	WebsiteURL     *string `json:"website_url,omitempty" validate:"omitempty,max=500"`
	RecruitURL     *string `json:"recruit_url,omitempty" validate:"omitempty,max=500"`
	MypageID       *string `json:"mypage_id,omitempty" validate:"omitempty,max=200"`
	MypagePassword *string `json:"mypage_password,omitempty" validate:"omitempty,max=200"`

	Notes          *string `json:"notes,omitempty"`
	InterviewNotes *string `json:"interview_notes,omitempty"`
}

// CompanyUpdate é parcial e tri-state: ausente = não altera, null = limpa, valor = grava.
type CompanyUpdate struct {
	CompanyName Field[string] `json:"company_name,omitzero" validate:"omitempty,min=1,max=200"`
	Industry    Field[string] `json:"industry,omitzero" validate:"omitempty,max=100"`
	JobType     Field[string] `json:"job_type,omitzero" validate:"omitempty,max=100"`
	Location    Field[string] `json:"location,omitzero" validate:"omitempty,max=200"`
	Salary      Field[string] `json:"salary,omitzero" validate:"omitempty,max=100"`

	Status   Field[Status] `json:"status,omitzero" validate:"omitempty,company_status"`
	Priority Field[int]    `json:"priority,omitzero" validate:"omitempty,min=1,max=5"`

	ESDeadline        Field[string] `json:"es_deadline,omitzero" validate:"omitempty,datetime=2006-01-02"`
	ESSubmitted       Field[bool]   `json:"es_submitted,omitzero"`
	InterviewCount    Field[int]    `json:"interview_count,omitzero" validate:"omitempty,min=0"`
	NextInterviewDate Field[string] `json:"next_interview_date,omitzero" validate:"omitempty,interview_time"`

	WebsiteURL     Field[string] `json:"website_url,omitzero" validate:"omitempty,max=500"`
	RecruitURL     Field[string] `json:"recruit_url,omitzero" validate:"omitempty,max=500"`
	MypageID       Field[string] `json:"mypage_id,omitzero" validate:"omitempty,max=200"`
	MypagePassword Field[string] `json:"mypage_password,omitzero" validate:"omitempty,max=200"`

	Notes          Field[string] `json:"notes,omitzero"`
	InterviewNotes Field[string] `json:"interview_notes,omitzero"`
}

// Empty reports an update that touches nothing.
func (u CompanyUpdate) Empty() bool {
	return u == CompanyUpdate{}
}

type CompanyInfoRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
}
