package handler

import (
	"dating-chat-api/dto/req"
	"dating-chat-api/dto/res"
	"dating-chat-api/usecase"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	Chats    usecase.ChatUsecase
	Messages usecase.MessageUsecase
	Typing   usecase.TypingUsecase
	*validator.Validate
	*logrus.Logger
}

func NewChatHandler(
	chats usecase.ChatUsecase,
	messages usecase.MessageUsecase,
	typing usecase.TypingUsecase,
	validate *validator.Validate,
	logger *logrus.Logger,
) *ChatHandler {
	return &ChatHandler{Chats: chats, Messages: messages, Typing: typing, Validate: validate, Logger: logger}
}

func (handler *ChatHandler) CreateRoom(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	request := new(req.RoomRequest)
	if err := c.BodyParser(request); err != nil {
		return fiber.ErrBadRequest
	}
	if err := handler.Validate.Struct(request); err != nil {
		return err
	}

	roomID, err := handler.Chats.GetOrCreateRoom(c.UserContext(), userID, request.UserID)
	if err != nil {
		return err
	}

	return c.JSON(res.CommonResponse[res.RoomIDResponse]{
		Message:    "Successfully opened chat room",
		StatusCode: fiber.StatusOK,
		Data:       res.RoomIDResponse{RoomId: roomID},
	})
}

func (handler *ChatHandler) GetAllRooms(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rooms, err := handler.Chats.ListRooms(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(res.CommonResponse[[]res.RoomResponse]{
		Message:    "Successfully to Get All Chats",
		StatusCode: fiber.StatusOK,
		Data:       rooms,
	})
}

func (handler *ChatHandler) GetMessagesByRoomID(c *fiber.Ctx) error {
	roomID, err := handler.authorize(c)
	if err != nil {
		return err
	}

	messages, err := handler.Messages.FetchHistory(c.UserContext(), roomID)
	if err != nil {
		return err
	}

	responses := make([]res.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i], handler.Messages.ImageURL))
	}
	return c.JSON(res.CommonResponse[[]res.MessageResponse]{
		Message:    "Successfully to Get Messages",
		StatusCode: fiber.StatusOK,
		Data:       responses,
	})
}

func (handler *ChatHandler) SendMessage(c *fiber.Ctx) error {
	roomID, err := handler.authorize(c)
	if err != nil {
		return err
	}

	request := new(req.MessageRequest)
	if err := c.BodyParser(request); err != nil {
		return fiber.ErrBadRequest
	}
	if err := handler.Validate.Struct(request); err != nil {
		return err
	}

	userID, _ := currentUserID(c)
	message, err := handler.Messages.Send(c.UserContext(), roomID, userID, request.Content)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Message sent",
		StatusCode: fiber.StatusCreated,
		Data:       toMessageResponse(message, handler.Messages.ImageURL),
	})
}

func (handler *ChatHandler) UploadImage(c *fiber.Ctx) error {
	roomID, err := handler.authorize(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	blob, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	userID, _ := currentUserID(c)
	message, err := handler.Messages.SendImage(c.UserContext(), roomID, userID, blob, header.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Image sent",
		StatusCode: fiber.StatusCreated,
		Data:       toMessageResponse(message, handler.Messages.ImageURL),
	})
}

func (handler *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if _, err := handler.Messages.MarkDeleted(c.UserContext(), c.Params("messageId"), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := handler.Messages.MarkRead(c.UserContext(), c.Params("messageId"), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *ChatHandler) SetTyping(c *fiber.Ctx) error {
	roomID, err := handler.authorize(c)
	if err != nil {
		return err
	}

	request := new(req.TypingRequest)
	if err := c.BodyParser(request); err != nil {
		return fiber.ErrBadRequest
	}

	userID, _ := currentUserID(c)
	if err := handler.Typing.SetTyping(c.UserContext(), roomID, userID, request.IsTyping); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// authorize checks the caller against the :roomId route param.
func (handler *ChatHandler) authorize(c *fiber.Ctx) (string, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return "", err
	}

	roomID := c.Params("roomId")
	if _, err := handler.Chats.AuthorizeRoom(c.UserContext(), roomID, userID); err != nil {
		handler.Logger.WithError(err).Warnf("User %s denied access to room %s", userID, roomID)
		return "", err
	}
	return roomID, nil
}
