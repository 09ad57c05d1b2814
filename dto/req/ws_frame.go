package req

import "dating-chat-api/enum"

// ClientFrame is one action sent by a mobile client over the chat websocket.
type ClientFrame struct {
	Type      enum.FrameType `json:"type" validate:"required,oneof=send image delete typing"`
	Content   string         `json:"content,omitempty" validate:"required_if=Type send,max=4000"`
	MessageID string         `json:"messageId,omitempty" validate:"required_if=Type delete"`
	// Image is base64 encoded.
	Image       string `json:"image,omitempty" validate:"required_if=Type image"`
	ContentType string `json:"contentType,omitempty"`
	Text        string `json:"text,omitempty"`
}
