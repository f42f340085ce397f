package models

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CompanyEvent é publicado a cada escrita bem-sucedida.
type CompanyEvent struct {
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCompanyEvent(action string, c *Company) CompanyEvent {
	return CompanyEvent{
		Action:    action,
		ID:        c.ID,
		Name:      c.CompanyName,
		Status:    c.Status,
		Timestamp: time.Now().UTC(),
	}
}
