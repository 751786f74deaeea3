package store

import (
	"sort"

	"atuna_estate/internal/models"

	"gorm.io/gorm"
)

func (s *Store) CreateChatroom(chatroom *models.Chatroom) error {
	if chatroom.Name == "" {
		return validationErr("chatroom name is required")
	}
	return translate(s.db.Create(chatroom).Error)
}

func (s *Store) GetChatroom(id string) (*models.Chatroom, error) {
	var chatroom models.Chatroom
	if err := s.db.First(&chatroom, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &chatroom, nil
}

func (s *Store) ListChatrooms(offset, limit int) ([]models.Chatroom, error) {
	offset, limit = clampPage(offset, limit)
	var chatrooms []models.Chatroom
	err := s.db.Order("created_at").Offset(offset).Limit(limit).Find(&chatrooms).Error
	if err != nil {
		return nil, translate(err)
	}
	return chatrooms, nil
}

// DeleteChatroom removes the room and cascades to its messages in one
// transaction.
func (s *Store) DeleteChatroom(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var chatroom models.Chatroom
		if err := tx.First(&chatroom, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("chatroom_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&chatroom).Error
	})
	return translate(err)
}

func (s *Store) CreateMessage(message *models.Message) error {
	if message.Content == "" {
		return validationErr("message content is required")
	}
	var count int64
	if err := s.db.Model(&models.Chatroom{}).
		Where("id = ?", message.ChatroomID).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	if message.Reactions == nil {
		message.Reactions = models.ReactionMap{}
	}
	return translate(s.db.Create(message).Error)
}

func (s *Store) GetMessage(id string) (*models.Message, error) {
	var message models.Message
	if err := s.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

func (s *Store) ListMessages(chatroomID string, offset, limit int) ([]models.Message, error) {
	offset, limit = clampPage(offset, limit)
	var count int64
	if err := s.db.Model(&models.Chatroom{}).
		Where("id = ?", chatroomID).Count(&count).Error; err != nil {
		return nil, translate(err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	var messages []models.Message
	err := s.db.Where("chatroom_id = ?", chatroomID).
		Order("created_at").Offset(offset).Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

func (s *Store) DeleteMessage(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Message{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReaction records that a user reacted to a message with an emoji.
// Reacting twice with the same emoji is a no-op.
func (s *Store) AddReaction(messageID, emoji, userID string) (*models.Message, error) {
	if emoji == "" {
		return nil, validationErr("emoji is required")
	}
	var message models.Message
	if err := s.db.First(&message, "id = ?", messageID).Error; err != nil {
		return nil, translate(err)
	}
	if message.Reactions == nil {
		message.Reactions = models.ReactionMap{}
	}
	users := message.Reactions[emoji]
	if contains(users, userID) {
		return &message, nil
	}
	users = append(users, userID)
	sort.Strings(users)
	message.Reactions[emoji] = users
	if err := s.db.Save(&message).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}
