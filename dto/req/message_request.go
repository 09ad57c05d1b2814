package req

type MessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type TypingRequest struct {
	IsTyping bool `json:"isTyping"`
}
