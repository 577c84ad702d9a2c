package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hs-chat-be/internal/constant"
	"hs-chat-be/internal/dto"
	"hs-chat-be/internal/pkg/logger"
	"hs-chat-be/internal/pkg/serverutils"
	"hs-chat-be/internal/service"
	"hs-chat-be/pkg/llm"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type chatController struct {
	service          service.IChatService
	validate         *validator.Validate
	logger           logger.ILogger
	openAIConfigured bool
}

func NewChatController(service service.IChatService, appLogger logger.ILogger, openAIConfigured bool) IChatController {
	return &chatController{
		service:          service,
		validate:         validator.New(),
		logger:           appLogger,
		openAIConfigured: openAIConfigured,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
	r.Get("/health", c.Health)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		case errors.Is(err, llm.ErrAuthFailed):
			c.logger.Error("chat", "authentication with generation service failed", map[string]interface{}{"error": err.Error()})
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ChatErrorResponse(err.Error(), constant.MsgAuthFailed))
		default:
			c.logger.Error("chat", "chat turn failed", map[string]interface{}{"error": err.Error()})
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ChatErrorResponse(err.Error(), constant.MsgGenericError))
		}
	}
	return ctx.JSON(res)
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:           "ok",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		OpenAIConfigured: c.openAIConfigured,
	})
}
