package handler

import (
	"context"
	"dating-chat-api/config/logger"
	"dating-chat-api/dto/req"
	"dating-chat-api/dto/res"
	"dating-chat-api/enum"
	"dating-chat-api/screen"
	"dating-chat-api/security"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const frameTimeout = 30 * time.Second

var errSessionExpired = errors.New("session expired")

// TokenVerifier resolves a bearer token to the user and its expiry.
type TokenVerifier interface {
	Identify(token string) (string, time.Time, error)
}

// WebSocketHandler mounts one chat screen session per connection. The
// client sends action frames; the server pushes view snapshots.
type WebSocketHandler struct {
	Screen screen.Dependencies
	Tokens TokenVerifier
	*validator.Validate
	Log *logger.AppLogger
}

func NewWebSocketHandler(deps screen.Dependencies, tokens TokenVerifier, validate *validator.Validate, log *logger.AppLogger) *WebSocketHandler {
	return &WebSocketHandler{Screen: deps, Tokens: tokens, Validate: validate, Log: log}
}

// Upgrade lets only websocket handshakes through to HandleWebSocket.
func (handler *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auth := security.NewSessionStore()
	defer auth.Close()

	auth.Begin()
	userID, expiresAt, err := handler.Tokens.Identify(bearerToken(c))
	if err != nil {
		auth.SignedOut()
		handler.Log.WS.Warning.Warn().Err(err).Msg("rejected websocket without a valid token")
		_ = c.WriteJSON(res.ServerFrame{Type: enum.FrameError, Error: fiber.ErrUnauthorized.Message})
		return
	}
	auth.SignedIn(userID, expiresAt)

	session := screen.New(handler.Screen, userID)
	if err := handler.open(ctx, c, session); err != nil {
		handler.Log.WS.Warning.Warn().Err(err).Str("userId", userID).Msg("failed to open chat session")
		_ = c.WriteJSON(res.ServerFrame{Type: enum.FrameError, Error: err.Error()})
		_ = session.Close()
		return
	}
	handler.Log.WS.Info.Info().Str("userId", userID).Str("roomId", session.RoomID()).Msg("client joined chat room")

	authUpdates, unsubscribe := auth.Subscribe()
	defer unsubscribe()

	failures := make(chan error, 8)
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		handler.writeLoop(c, session, authUpdates, failures)
	}()

	handler.readLoop(ctx, c, session, failures)

	cancel()
	_ = session.Close()
	writer.Wait()
	handler.Log.WS.Info.Info().Str("userId", userID).Str("roomId", session.RoomID()).Msg("client left chat room")
}

func (handler *WebSocketHandler) open(ctx context.Context, c *websocket.Conn, session *screen.Session) error {
	if roomID := c.Query("roomId"); roomID != "" {
		return session.Open(ctx, roomID)
	}
	if peerID := c.Query("peerId"); peerID != "" {
		return session.OpenWithPeer(ctx, peerID)
	}
	return fiber.NewError(fiber.StatusBadRequest, "roomId or peerId is required")
}

// readLoop handles action frames until the client goes away.
func (handler *WebSocketHandler) readLoop(ctx context.Context, c *websocket.Conn, session *screen.Session, failures chan<- error) {
	for {
		var frame req.ClientFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				handler.Log.WS.Stream.Warn().Err(err).Msg("read error")
			}
			return
		}

		if err := handler.apply(ctx, session, &frame); err != nil {
			select {
			case failures <- err:
			default:
				handler.Log.WS.Warning.Warn().Err(err).Msg("dropped error frame")
			}
		}
	}
}

func (handler *WebSocketHandler) apply(ctx context.Context, session *screen.Session, frame *req.ClientFrame) error {
	if err := handler.Validate.Struct(frame); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, frameTimeout)
	defer cancel()

	switch frame.Type {
	case enum.FrameSend:
		_, err := session.SendText(ctx, frame.Content)
		return err
	case enum.FrameImage:
		blob, err := base64.StdEncoding.DecodeString(frame.Image)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "image is not valid base64")
		}
		_, err = session.SendImage(ctx, blob, frame.ContentType)
		return err
	case enum.FrameDelete:
		return session.Delete(ctx, frame.MessageID)
	case enum.FrameTyping:
		session.InputChanged(frame.Text)
		return nil
	}
	return fiber.NewError(fiber.StatusBadRequest, "unknown frame type")
}

// writeLoop is the only goroutine writing to the connection.
func (handler *WebSocketHandler) writeLoop(c *websocket.Conn, session *screen.Session, auth <-chan security.AuthSession, failures <-chan error) {
	for {
		var frame res.ServerFrame
		select {
		case view, ok := <-session.Views():
			if !ok {
				return
			}
			frame = res.ServerFrame{Type: enum.FrameView, View: view}
		case state, ok := <-auth:
			if !ok {
				auth = nil
				continue
			}
			if state.State != security.Unauthenticated {
				continue
			}
			_ = c.WriteJSON(res.ServerFrame{Type: enum.FrameError, Error: errSessionExpired.Error()})
			// unblocks the read loop, which then tears the session down
			_ = c.Close()
			return
		case err := <-failures:
			frame = res.ServerFrame{Type: enum.FrameError, Error: clientMessage(err)}
		}

		if err := c.WriteJSON(frame); err != nil {
			handler.Log.WS.Error.Error().Err(err).Msg("error writing frame")
			_ = c.Close()
			return
		}
	}
}

func clientMessage(err error) string {
	if StatusFor(err) >= fiber.StatusInternalServerError {
		return fiber.ErrInternalServerError.Message
	}
	return err.Error()
}

// bearerToken reads ?token= first because browsers cannot set headers on
// a websocket handshake.
func bearerToken(c *websocket.Conn) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(c.Headers(fiber.HeaderAuthorization), "Bearer ")
}
