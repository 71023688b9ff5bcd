package inbox

import (
	"time"

	"redacao-app/internal/domain/users"
)

// Message is a staff announcement sent to one cohort or to everyone.
// Delivery is fanned out into one Recipient row per addressed student at
// send time.
type Message struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Subject string `gorm:"not null" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`

	SenderID uint       `gorm:"not null" json:"sender_id"`
	Sender   users.User `gorm:"foreignKey:SenderID" json:"-"`

	// nil targets every student
	TargetCohort *string `json:"target_cohort,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "inbox_messages"
}

type Recipient struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	MessageID uint     `gorm:"not null;uniqueIndex:idx_inbox_recipients_msg_user,priority:1" json:"message_id"`
	Message   *Message `json:"message,omitempty"`

	UserID uint       `gorm:"not null;uniqueIndex:idx_inbox_recipients_msg_user,priority:2;index" json:"user_id"`
	User   users.User `json:"-"`

	ReadAt *time.Time `json:"read_at,omitempty"`
}

func (Recipient) TableName() string {
	return "inbox_recipients"
}

func (r Recipient) Read() bool {
	return r.ReadAt != nil
}
