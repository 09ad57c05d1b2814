package enum

type EventType string

const (
	EventMessageInserted EventType = "message.inserted"
	EventMessageUpdated  EventType = "message.updated"
	EventTypingChanged   EventType = "typing.changed"
	// EventResync is emitted after the feed reconnects; events may have been missed.
	EventResync EventType = "resync"
)
