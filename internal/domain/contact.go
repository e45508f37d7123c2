package domain

import "time"

// ContactMessage is a customer enquiry submitted through the contact form.
type ContactMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `json:"email" form:"email"`
	Mobile    string    `json:"mobile" form:"mobile"`
	Message   string    `gorm:"size:4096" json:"message" form:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "contact_message"
}
