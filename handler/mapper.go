package handler

import (
	"dating-chat-api/dto/res"
	"dating-chat-api/entity"
)

// toMessageResponse masks deleted content the same way the chat screen does.
func toMessageResponse(message *entity.Message, imageURL func(string) string) res.MessageResponse {
	response := res.MessageResponse{
		MessageId: message.ID,
		ChatRoom:  message.ChatRoomID,
		SenderId:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		IsDeleted: message.IsDeleted,
		IsImage:   message.IsImage,
	}
	switch {
	case message.IsDeleted:
		response.Content = entity.DeletedPlaceholder
	case message.IsImage && message.ImageRef != "":
		response.ImageURL = imageURL(message.ImageRef)
	}
	return response
}
