package res

import "dating-chat-api/enum"

type ServerFrame struct {
	Type  enum.FrameType `json:"type"`
	View  interface{}    `json:"view,omitempty"`
	Error string         `json:"error,omitempty"`
}
