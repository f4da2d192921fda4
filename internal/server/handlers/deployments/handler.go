package deployments

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/pullgit/pullgit/internal/deployments"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	deploymentsSvc *deployments.Service

	logger *zap.Logger
}

func NewHandler(deploymentsSvc *deployments.Service, logger *zap.Logger) handler.Handler {
	return &Handler{
		deploymentsSvc: deploymentsSvc,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/deployments")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/:id", h.get)
}

//	@Summary		List deployment types
//	@Description	Retrieve the catalog of deployment types a repository can be tagged with
//	@Tags			deployments
//	@Produce		json
//	@Success		200	{array}	TypeResponse
//	@Router			/deployments [get]
//
// List deployment types.
func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(lo.Map(h.deploymentsSvc.List(), func(t deployments.Type, _ int) TypeResponse {
		return ToTypeResponse(t)
	}))
}

//	@Summary		Get a deployment type
//	@Description	Retrieve a deployment type by ID
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment type ID"
//	@Success		200	{object}	TypeResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id} [get]
//
// Get a deployment type.
func (h *Handler) get(c *fiber.Ctx) error {
	t, err := h.deploymentsSvc.Get(c.Params("id"))
	if err != nil {
		return fmt.Errorf("failed to get deployment type: %w", err)
	}

	return c.JSON(ToTypeResponse(*t))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, deployments.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
