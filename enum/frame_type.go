package enum

type FrameType string

const (
	FrameSend   FrameType = "send"
	FrameImage  FrameType = "image"
	FrameDelete FrameType = "delete"
	FrameTyping FrameType = "typing"

	FrameView  FrameType = "view"
	FrameError FrameType = "error"
)
