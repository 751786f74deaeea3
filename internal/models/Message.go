package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ReactionMap maps an emoji to the user IDs that reacted with it. Stored as
// a JSON text column so it works on both Postgres and SQLite.
type ReactionMap map[string][]string

func (r ReactionMap) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *ReactionMap) Scan(value interface{}) error {
	if value == nil {
		*r = ReactionMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return errors.New("unsupported reaction column type")
	}
}

// GormDataType tells GORM how to create the column.
func (ReactionMap) GormDataType() string {
	return "text"
}

// Message belongs to one chatroom. Purging the sender nulls SenderID but
// keeps the message; deleting the chatroom deletes it.
type Message struct {
	Base
	ChatroomID string  `json:"chatroom_id" gorm:"type:uuid;index;not null"`
	SenderID   *string `json:"sender_id" gorm:"type:uuid;index"`
	Content    string  `json:"content" gorm:"type:text;not null"`
	IsAI       bool    `json:"is_ai" gorm:"default:false"`
	Reactions  ReactionMap `json:"reactions"`
}
