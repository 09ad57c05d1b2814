// Package screen holds the per-connection chat session: it gates the pair,
// keeps the conversation view and feeds it from the realtime streams.
package screen

import (
	"context"
	"dating-chat-api/entity"
	"dating-chat-api/enum"
	"dating-chat-api/presence"
	"dating-chat-api/realtime"
	"dating-chat-api/usecase"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotOpen     = errors.New("chat session is not open")
	ErrAlreadyOpen = errors.New("chat session is already open")
)

const (
	actionBuffer       = 16
	clearTypingTimeout = 2 * time.Second
)

type Dependencies struct {
	Chats    usecase.ChatUsecase
	Messages usecase.MessageUsecase
	Typing   usecase.TypingUsecase
	Feed     realtime.Feed
	Log      *logrus.Logger
	// TypingDebounce defaults to presence.DefaultTypingDebounce.
	TypingDebounce time.Duration
}

// action mutates the state; only the reducer goroutine runs actions.
type action func(*state)

// Session is one viewer's open conversation. Every view mutation goes
// through the reducer goroutine; I/O happens on the calling goroutine or in
// the stream pumps and only the result is posted to the reducer.
type Session struct {
	deps     Dependencies
	viewerID string
	roomID   string
	peerID   string

	ctx    context.Context
	cancel context.CancelFunc

	sub     *realtime.Subscription
	typing  *presence.Debouncer[bool]
	actions chan action
	views   chan View
	current atomic.Pointer[View]
	wg      sync.WaitGroup

	opening   atomic.Bool
	live      atomic.Bool
	closeOnce sync.Once

	// typingShown is the last typing value the peer was sent.
	typingShown atomic.Bool
}

func New(deps Dependencies, viewerID string) *Session {
	return &Session{
		deps:     deps,
		viewerID: viewerID,
		actions:  make(chan action, actionBuffer),
		views:    make(chan View, 1),
	}
}

// OpenWithPeer resolves (or creates) the room shared with peerID and opens it.
func (s *Session) OpenWithPeer(ctx context.Context, peerID string) error {
	roomID, err := s.deps.Chats.GetOrCreateRoom(ctx, s.viewerID, peerID)
	if err != nil {
		return err
	}
	return s.Open(ctx, roomID)
}

// Open checks that the viewer may chat in roomID, subscribes to the room and
// then loads history, so nothing committed in between is missed. A failed
// Open leaves no subscription behind.
func (s *Session) Open(ctx context.Context, roomID string) error {
	if !s.opening.CompareAndSwap(false, true) {
		return ErrAlreadyOpen
	}

	room, err := s.deps.Chats.AuthorizeRoom(ctx, roomID, s.viewerID)
	if err != nil {
		s.opening.Store(false)
		return err
	}

	sub, err := s.deps.Feed.Subscribe(ctx, roomID)
	if err != nil {
		s.opening.Store(false)
		return fmt.Errorf("subscribe to room %s: %w", roomID, err)
	}

	history, err := s.deps.Messages.FetchHistory(ctx, roomID)
	if err != nil {
		_ = sub.Close()
		s.opening.Store(false)
		return err
	}

	s.roomID = roomID
	s.peerID = room.Peer(s.viewerID)
	s.sub = sub
	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.typing = presence.NewDebouncer(s.deps.TypingDebounce, s.flushTyping)

	st := newState()
	st.merge(history)
	s.publish(st)

	s.wg.Add(3)
	go s.reduce(st)
	go s.pumpMessages()
	go s.pumpTyping()
	s.live.Store(true)

	s.log().WithFields(logrus.Fields{"roomId": roomID, "userId": s.viewerID}).Info("chat session opened")
	return nil
}

func (s *Session) RoomID() string {
	return s.roomID
}

// Views delivers snapshots, latest wins: a slow reader only sees the newest
// view. The channel is closed by Close.
func (s *Session) Views() <-chan View {
	return s.views
}

// Snapshot returns the latest published view.
func (s *Session) Snapshot() View {
	if v := s.current.Load(); v != nil {
		return *v
	}
	return View{RoomID: s.roomID}
}

func (s *Session) SendText(ctx context.Context, content string) (*entity.Message, error) {
	if !s.live.Load() {
		return nil, ErrNotOpen
	}
	message, err := s.deps.Messages.Send(ctx, s.roomID, s.viewerID, content)
	if err != nil {
		return nil, err
	}
	s.post(func(st *state) { st.upsert(*message) })
	s.typing.Schedule(false)
	return message, nil
}

func (s *Session) SendImage(ctx context.Context, blob []byte, contentType string) (*entity.Message, error) {
	if !s.live.Load() {
		return nil, ErrNotOpen
	}
	message, err := s.deps.Messages.SendImage(ctx, s.roomID, s.viewerID, blob, contentType)
	if err != nil {
		return nil, err
	}
	s.post(func(st *state) { st.upsert(*message) })
	return message, nil
}

func (s *Session) Delete(ctx context.Context, messageID string) error {
	if !s.live.Load() {
		return ErrNotOpen
	}
	message, err := s.deps.Messages.MarkDeleted(ctx, messageID, s.viewerID)
	if err != nil {
		return err
	}
	if message.ChatRoomID == s.roomID {
		s.post(func(st *state) { st.upsert(*message) })
	}
	return nil
}

// InputChanged reports the composer text; typing presence is debounced.
func (s *Session) InputChanged(text string) {
	if !s.live.Load() {
		return
	}
	s.typing.Schedule(strings.TrimSpace(text) != "")
}

// Close cancels pending typing updates, releases both subscriptions and
// waits for the session goroutines. If the peer was last told the viewer is
// typing, a final "not typing" is sent on a short detached context. It is
// safe to call more than once but must not race with Open.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if !s.live.Swap(false) {
			// never opened: keep it that way
			s.opening.Store(true)
			close(s.views)
			return
		}
		s.cancel()
		s.typing.Cancel()
		err = s.sub.Close()
		s.wg.Wait()
		s.clearTyping()
		close(s.views)
		s.log().WithFields(logrus.Fields{"roomId": s.roomID, "userId": s.viewerID}).Info("chat session closed")
	})
	return err
}

func (s *Session) reduce(st *state) {
	defer s.wg.Done()
	for {
		select {
		case apply := <-s.actions:
			apply(st)
			s.publish(st)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) publish(st *state) {
	st.version++
	v := st.view(s.roomID, s.peerID, s.viewerID, s.deps.Messages.ImageURL)
	s.current.Store(&v)

	// the reducer is the only sender, so after draining there is room
	select {
	case s.views <- v:
	default:
		select {
		case <-s.views:
		default:
		}
		s.views <- v
	}
}

func (s *Session) post(apply action) {
	select {
	case s.actions <- apply:
	case <-s.ctx.Done():
	}
}

func (s *Session) pumpMessages() {
	defer s.wg.Done()
	for event := range s.sub.Messages {
		switch event.Type {
		case enum.EventResync:
			history, err := s.deps.Messages.FetchHistory(s.ctx, s.roomID)
			if err != nil {
				s.log().WithError(err).Warnf("Failed to resync room %s", s.roomID)
				continue
			}
			s.post(func(st *state) { st.merge(history) })
		case enum.EventMessageInserted, enum.EventMessageUpdated:
			if event.Message == nil {
				continue
			}
			message := *event.Message
			if event.Type == enum.EventMessageInserted && message.SenderID != s.viewerID {
				if err := s.deps.Messages.MarkRead(s.ctx, message.ID, s.viewerID); err != nil {
					s.log().WithError(err).Warnf("Failed to mark message %s read", message.ID)
				}
			}
			s.post(func(st *state) { st.upsert(message) })
		}
	}
}

func (s *Session) pumpTyping() {
	defer s.wg.Done()
	for event := range s.sub.Typing {
		if event.Typing == nil || event.Typing.UserID == s.viewerID {
			continue
		}
		status := *event.Typing
		s.post(func(st *state) { st.setTyping(status.UserID, status.IsTyping) })
	}
}

func (s *Session) flushTyping(isTyping bool) {
	if err := s.deps.Typing.SetTyping(s.ctx, s.roomID, s.viewerID, isTyping); err != nil {
		s.log().WithError(err).Warnf("Failed to update typing status in room %s", s.roomID)
		return
	}
	s.typingShown.Store(isTyping)
}

func (s *Session) clearTyping() {
	if !s.typingShown.Swap(false) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), clearTypingTimeout)
	defer cancel()
	if err := s.deps.Typing.SetTyping(ctx, s.roomID, s.viewerID, false); err != nil {
		s.log().WithError(err).Warnf("Failed to clear typing status in room %s", s.roomID)
	}
}

func (s *Session) log() *logrus.Logger {
	if s.deps.Log == nil {
		return logrus.StandardLogger()
	}
	return s.deps.Log
}
