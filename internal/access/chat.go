package access

import (
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
)

func (s *Service) CreateChatroom(actor Actor, chatroom *models.Chatroom) error {
	if err := decide(actor, policy.Create, policy.Chatroom, policy.Relationship{}); err != nil {
		return err
	}
	return s.store.CreateChatroom(chatroom)
}

func (s *Service) GetChatroom(actor Actor, id string) (*models.Chatroom, error) {
	if err := decide(actor, policy.Read, policy.Chatroom, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.GetChatroom(id)
}

func (s *Service) ListChatrooms(actor Actor, offset, limit int) ([]models.Chatroom, error) {
	if err := decide(actor, policy.List, policy.Chatroom, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.ListChatrooms(offset, limit)
}

func (s *Service) DeleteChatroom(actor Actor, id string) error {
	if err := decide(actor, policy.Delete, policy.Chatroom, policy.Relationship{}); err != nil {
		return err
	}
	return s.store.DeleteChatroom(id)
}

// CreateMessage posts to a chatroom in the actor's name.
func (s *Service) CreateMessage(actor Actor, message *models.Message) error {
	if err := decide(actor, policy.Create, policy.Message, policy.Relationship{}); err != nil {
		return err
	}
	if message.SenderID == nil {
		id := actor.ID
		message.SenderID = &id
	}
	return s.store.CreateMessage(message)
}

func (s *Service) ListMessages(actor Actor, chatroomID string, offset, limit int) ([]models.Message, error) {
	if err := decide(actor, policy.List, policy.Message, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.ListMessages(chatroomID, offset, limit)
}

// AddReaction is a message update any authenticated role may perform.
func (s *Service) AddReaction(actor Actor, messageID, emoji string) (*models.Message, error) {
	if err := decide(actor, policy.Update, policy.Message, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.AddReaction(messageID, emoji, actor.ID)
}

// DeleteMessage is for the author or staff.
func (s *Service) DeleteMessage(actor Actor, id string) error {
	if err := guard(actor, policy.Delete, policy.Message); err != nil {
		return err
	}
	message, err := s.store.GetMessage(id)
	if err != nil {
		return err
	}
	rel := policy.Relationship{
		Sender: message.SenderID != nil && *message.SenderID == actor.ID,
	}
	if err := decide(actor, policy.Delete, policy.Message, rel); err != nil {
		return err
	}
	return s.store.DeleteMessage(message.ID)
}
