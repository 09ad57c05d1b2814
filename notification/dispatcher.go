package notification

import (
	"context"
	"dating-chat-api/entity"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPushURL = "https://exp.host/--/api/v2/push/send"
	pushTimeout    = 10 * time.Second
)

var ErrPushRejected = errors.New("push service rejected notification")

// Notification is the payload a sent message hands to the dispatcher.
type Notification struct {
	ChatRoomID string
	SenderID   string
	Content    string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

type RoomFinder interface {
	FindChatByID(ctx context.Context, id string) (*entity.ChatRoom, error)
}

type UserFinder interface {
	FindById(ctx context.Context, id string) (*entity.User, error)
}

type expoMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// ExpoDispatcher pushes "New Message" to the other participant of the room
// through the Expo push API. Recipients without a push token are skipped.
type ExpoDispatcher struct {
	Rooms RoomFinder
	Users UserFinder
	URL   string
	*logrus.Logger
}

func NewExpoDispatcher(rooms RoomFinder, users UserFinder, url string, logger *logrus.Logger) *ExpoDispatcher {
	if url == "" {
		url = DefaultPushURL
	}
	return &ExpoDispatcher{Rooms: rooms, Users: users, URL: url, Logger: logger}
}

func (d *ExpoDispatcher) Dispatch(ctx context.Context, n Notification) error {
	room, err := d.Rooms.FindChatByID(ctx, n.ChatRoomID)
	if err != nil {
		return fmt.Errorf("find room %s: %w", n.ChatRoomID, err)
	}
	if room == nil {
		return fmt.Errorf("room %s not found", n.ChatRoomID)
	}

	recipientID := room.Peer(n.SenderID)
	recipient, err := d.Users.FindById(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("find recipient %s: %w", recipientID, err)
	}
	if recipient == nil || recipient.PushToken == "" {
		d.Logger.WithField("userId", recipientID).Debug("recipient has no push token, skipping notification")
		return nil
	}

	agent := fiber.Post(d.URL).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Timeout(d.timeout(ctx)).
		JSON(expoMessage{
			To:    recipient.PushToken,
			Sound: "default",
			Title: "New Message",
			Body:  n.Content,
			Data:  map[string]string{"chatRoomId": n.ChatRoomID, "senderId": n.SenderID},
		})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("send push: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return fmt.Errorf("%w: status %d: %s", ErrPushRejected, code, body)
	}
	return nil
}

func (d *ExpoDispatcher) timeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left > 0 {
			return left
		}
	}
	return pushTimeout
}
