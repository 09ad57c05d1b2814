package handler

import (
	"dating-chat-api/dto/req"
	"dating-chat-api/dto/res"
	"dating-chat-api/entity"
	"dating-chat-api/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MatchHandler struct {
	usecase.MatchUsecase
	*logrus.Logger
}

func NewMatchHandler(matchUsecase usecase.MatchUsecase, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{MatchUsecase: matchUsecase, Logger: logger}
}

func (handler *MatchHandler) Like(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	request := new(req.LikeRequest)
	if err := c.BodyParser(request); err != nil {
		handler.Logger.WithError(err).Warn("Failed to parse like request")
		return fiber.ErrBadRequest
	}

	match, err := handler.MatchUsecase.Like(c.UserContext(), userID, request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[*entity.Match]{
		Message:    "Successfully liked user",
		StatusCode: fiber.StatusCreated,
		Data:       match,
	})
}

func (handler *MatchHandler) CanChat(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	canChat, err := handler.MatchUsecase.CanChat(c.UserContext(), userID, c.Params("userId"))
	if err != nil {
		return err
	}

	return c.JSON(res.CommonResponse[res.CanChatResponse]{
		Message:    "Successfully checked match",
		StatusCode: fiber.StatusOK,
		Data:       res.CanChatResponse{CanChat: canChat},
	})
}
