package controller

import (
	"github.com/gofiber/fiber/v2"

	"hs-chat-be/pkg/scenario"
)

type IScenarioController interface {
	RegisterRoutes(r fiber.Router)
	ListScenarios(ctx *fiber.Ctx) error
}

type scenarioController struct{}

func NewScenarioController() IScenarioController {
	return &scenarioController{}
}

func (c *scenarioController) RegisterRoutes(r fiber.Router) {
	r.Get("/scenarios", c.ListScenarios)
}

func (c *scenarioController) ListScenarios(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"scenarios": scenario.Index()})
}
