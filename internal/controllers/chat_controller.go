package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atuna_estate/internal/models"
)

type createChatroomInput struct {
	Name string `json:"name" binding:"required"`
}

type createMessageInput struct {
	Content string `json:"content" binding:"required"`
	IsAI    bool   `json:"is_ai"`
}

type addReactionInput struct {
	Emoji string `json:"emoji" binding:"required"`
}

// CreateChatroom opens a new room.
func CreateChatroom(c *gin.Context) {
	var input createChatroomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	chatroom := models.Chatroom{Name: input.Name}
	if err := accessSvc.CreateChatroom(actorFrom(c), &chatroom); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chatroom": chatroom})
}

// GetChatroom returns one room.
func GetChatroom(c *gin.Context) {
	chatroom, err := accessSvc.GetChatroom(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatroom": chatroom})
}

// ListChatrooms returns a page of rooms.
func ListChatrooms(c *gin.Context) {
	offset, limit := pageParams(c)
	chatrooms, err := accessSvc.ListChatrooms(actorFrom(c), offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatrooms": chatrooms})
}

// DeleteChatroom removes a room and all of its messages. Staff only.
func DeleteChatroom(c *gin.Context) {
	if err := accessSvc.DeleteChatroom(actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chatroom deleted."})
}

// CreateMessage posts a message into a room and broadcasts it to connected
// websocket clients.
func CreateMessage(c *gin.Context) {
	var input createMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message := models.Message{
		ChatroomID: c.Param("id"),
		Content:    input.Content,
		IsAI:       input.IsAI,
	}
	if err := accessSvc.CreateMessage(actorFrom(c), &message); err != nil {
		respondErr(c, err)
		return
	}

	chatHub.Publish(message.ChatroomID, gin.H{"event": "message", "message": message})
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// ListMessages returns a page of a room's messages, oldest first.
func ListMessages(c *gin.Context) {
	offset, limit := pageParams(c)
	messages, err := accessSvc.ListMessages(actorFrom(c), c.Param("id"), offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// AddReaction toggles an emoji reaction onto a message. Reacting twice with
// the same emoji is a no-op.
func AddReaction(c *gin.Context) {
	var input addReactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message, err := accessSvc.AddReaction(actorFrom(c), c.Param("messageId"), input.Emoji)
	if err != nil {
		respondErr(c, err)
		return
	}

	chatHub.Publish(message.ChatroomID, gin.H{"event": "reaction", "message": message})
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteMessage removes a message. Senders can delete their own; staff can
// delete any.
func DeleteMessage(c *gin.Context) {
	if err := accessSvc.DeleteMessage(actorFrom(c), c.Param("messageId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted."})
}
