package screen

import (
	"dating-chat-api/entity"
	"sort"
	"time"
)

// ViewMessage is a message as the client renders it. Content is already
// masked for deleted messages and ImageURL is resolved.
type ViewMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsDeleted bool      `json:"isDeleted"`
	IsImage   bool      `json:"isImage"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	IsOwn     bool      `json:"isOwn"`
}

// View is an immutable snapshot of one conversation.
type View struct {
	RoomID      string        `json:"roomId"`
	PeerID      string        `json:"peerId"`
	Messages    []ViewMessage `json:"messages"`
	TypingUsers []string      `json:"typingUsers"`
	Version     uint64        `json:"version"`
}

// state is owned by the reducer goroutine.
type state struct {
	messages []entity.Message
	index    map[string]int
	typing   map[string]bool
	version  uint64
}

func newState() *state {
	return &state{index: make(map[string]int), typing: make(map[string]bool)}
}

// upsert inserts a message in conversation order, or replaces the copy
// already held under the same id. Deletion is sticky.
func (s *state) upsert(message entity.Message) {
	if i, ok := s.index[message.ID]; ok {
		if s.messages[i].IsDeleted && !message.IsDeleted {
			message.IsDeleted = true
			message.DeletedAt = s.messages[i].DeletedAt
		}
		s.messages[i] = message
		return
	}

	pos := sort.Search(len(s.messages), func(i int) bool { return message.Before(&s.messages[i]) })
	s.messages = append(s.messages, entity.Message{})
	copy(s.messages[pos+1:], s.messages[pos:])
	s.messages[pos] = message
	for i := pos; i < len(s.messages); i++ {
		s.index[s.messages[i].ID] = i
	}
}

func (s *state) merge(messages []entity.Message) {
	for _, message := range messages {
		s.upsert(message)
	}
}

func (s *state) setTyping(userID string, isTyping bool) {
	if isTyping {
		s.typing[userID] = true
	} else {
		delete(s.typing, userID)
	}
}

func (s *state) view(roomID, peerID, viewerID string, imageURL func(string) string) View {
	v := View{
		RoomID:      roomID,
		PeerID:      peerID,
		Messages:    make([]ViewMessage, 0, len(s.messages)),
		TypingUsers: make([]string, 0, len(s.typing)),
		Version:     s.version,
	}
	for _, m := range s.messages {
		vm := ViewMessage{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			IsDeleted: m.IsDeleted,
			IsImage:   m.IsImage,
			IsOwn:     m.SenderID == viewerID,
		}
		switch {
		case m.IsDeleted:
			vm.Content = entity.DeletedPlaceholder
		case m.IsImage && m.ImageRef != "":
			vm.ImageURL = imageURL(m.ImageRef)
		}
		v.Messages = append(v.Messages, vm)
	}
	for userID := range s.typing {
		v.TypingUsers = append(v.TypingUsers, userID)
	}
	sort.Strings(v.TypingUsers)
	return v
}
