package domain

import "time"

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Subject   string    `json:"subject" form:"subject"`
	Body      string    `json:"body" form:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "contact_message"
}
