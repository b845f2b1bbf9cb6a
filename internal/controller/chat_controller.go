package controller

import (
	"errors"

	"github.com/Ines207/ARI/internal/dto"
	"github.com/Ines207/ARI/internal/pkg/serverutils"
	"github.com/Ines207/ARI/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ActivateSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	GetTurnState(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	sessionService service.ISessionService
	jwtGuard       fiber.Handler
	validate       *validator.Validate
}

func NewChatController(chatService service.IChatService, sessionService service.ISessionService, jwtGuard fiber.Handler) IChatController {
	return &chatController{
		chatService:    chatService,
		sessionService: sessionService,
		jwtGuard:       jwtGuard,
		validate:       validator.New(),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	sessions := r.Group("/sessions", c.jwtGuard)
	sessions.Get("/", c.ListSessions)
	sessions.Post("/", c.CreateSession)
	sessions.Put("/:id/activate", c.ActivateSession)
	sessions.Delete("/:id", c.DeleteSession)
	sessions.Get("/:id/transcript", c.GetTranscript)
	sessions.Get("/:id/state", c.GetTurnState)

	chat := r.Group("/chat", c.jwtGuard)
	chat.Post("/", c.SendMessage)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	res, err := c.sessionService.List(ctx.Context(), serverutils.Username(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Sessions retrieved",
		"data":    res,
	})
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Create(ctx.Context(), serverutils.Username(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Session created",
		"data":    res,
	})
}

func (c *chatController) ActivateSession(ctx *fiber.Ctx) error {
	err := c.sessionService.SetActive(ctx.Context(), serverutils.Username(ctx), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Session activated",
		"data":    nil,
	})
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	err := c.sessionService.Delete(ctx.Context(), serverutils.Username(ctx), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	c.chatService.ClearTurnState(ctx.Params("id"))
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Session deleted",
		"data":    nil,
	})
}

func (c *chatController) GetTranscript(ctx *fiber.Ctx) error {
	res, err := c.sessionService.LoadTranscript(ctx.Context(), serverutils.Username(ctx), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Transcript retrieved",
		"data":    res,
	})
}

func (c *chatController) GetTurnState(ctx *fiber.Ctx) error {
	res, err := c.chatService.LastTurnState(ctx.Context(), serverutils.Username(ctx), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Turn state retrieved",
		"data":    res,
	})
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	res, err := c.chatService.SendMessage(ctx.Context(), serverutils.Username(ctx), &req)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Message processed",
		"data":    res,
	})
}

func errorResponse(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrUnknownUser):
		status = fiber.StatusUnauthorized
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    status,
		"message": err.Error(),
	})
}
