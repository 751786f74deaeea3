package models

// Chatroom groups messages. Deleting a chatroom deletes its messages.
type Chatroom struct {
	Base
	Name string `json:"name" gorm:"not null"`

	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ChatroomID"`
}
