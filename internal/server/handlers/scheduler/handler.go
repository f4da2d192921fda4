package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/scheduler"
	"github.com/pullgit/pullgit/internal/server/validation"
	"github.com/pullgit/pullgit/internal/synclog"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const stopTimeout = 30 * time.Second

type Handler struct {
	schedulerSvc *scheduler.Service
	reposSvc     *repositories.Service
	journal      *synclog.Log

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	schedulerSvc *scheduler.Service,
	reposSvc *repositories.Service,
	journal *synclog.Log,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		schedulerSvc: schedulerSvc,
		reposSvc:     reposSvc,
		journal:      journal,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	settings := r.Group("/settings")
	settings.Use(h.errorsHandler)
	settings.Get("/", h.getSettings)
	settings.Patch("/", validation.DecorateWithBodyEx(h.validator, h.patchSettings))

	r = r.Group("/scheduler")

	r.Use(h.errorsHandler)
	r.Get("/", h.get)
	r.Post("/start", h.start)
	r.Post("/stop", h.stop)
	r.Get("/log", validation.DecorateWithQueryEx(h.validator, h.log))
}

//	@Summary		Get scheduler state
//	@Description	Report whether the scheduler runs and list its sync jobs
//	@Tags			scheduler
//	@Produce		json
//	@Success		200	{object}	SchedulerResponse
//	@Router			/scheduler [get]
//
// Get scheduler state.
func (h *Handler) get(c *fiber.Ctx) error {
	settings, err := h.reposSvc.Settings(c.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return c.JSON(h.toResponse(settings))
}

//	@Summary		Start the scheduler
//	@Description	Schedule every repository with auto-sync enabled. Does nothing while auto-sync is disabled globally.
//	@Tags			scheduler
//	@Produce		json
//	@Success		200	{object}	SchedulerResponse
//	@Router			/scheduler/start [post]
//
// Start the scheduler.
func (h *Handler) start(c *fiber.Ctx) error {
	if err := h.schedulerSvc.Start(c.Context()); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	return h.get(c)
}

//	@Summary		Stop the scheduler
//	@Description	Cancel every sync job. Syncs already running finish first.
//	@Tags			scheduler
//	@Produce		json
//	@Success		200	{object}	SchedulerResponse
//	@Router			/scheduler/stop [post]
//
// Stop the scheduler.
func (h *Handler) stop(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), stopTimeout)
	defer cancel()

	if err := h.schedulerSvc.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}

	return h.get(c)
}

//	@Summary		Read the sync log
//	@Description	Return the last lines of the sync log
//	@Tags			scheduler
//	@Produce		json
//	@Param			lines	query		int	false	"Number of lines, 0 for all"
//	@Success		200		{object}	LogResponse
//	@Router			/scheduler/log [get]
//
// Read the sync log.
func (h *Handler) log(c *fiber.Ctx, req *LogQuery) error {
	lines, err := h.journal.Tail(req.Lines)
	if err != nil {
		return fmt.Errorf("failed to read sync log: %w", err)
	}

	return c.JSON(LogResponse{
		Path:  h.journal.Path(),
		Lines: lines,
	})
}

//	@Summary		Get settings
//	@Description	Retrieve the global sync settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Router			/settings [get]
//
// Get settings.
func (h *Handler) getSettings(c *fiber.Ctx) error {
	settings, err := h.reposSvc.Settings(c.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return c.JSON(toSettingsResponse(settings))
}

//	@Summary		Update settings
//	@Description	Update the global sync settings. Toggling auto-sync starts or stops the scheduler.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			settings	body		SettingsPATCHRequest	true	"Settings update"
//	@Success		200			{object}	SettingsResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Router			/settings [patch]
//
// Update settings.
func (h *Handler) patchSettings(c *fiber.Ctx, req *SettingsPATCHRequest) error {
	settings, err := h.reposSvc.UpdateSettings(c.Context(), repositories.SettingsUpdate{
		AutoSync:            req.AutoSync,
		DefaultSyncInterval: req.DefaultSyncInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	if req.AutoSync != nil {
		if *req.AutoSync {
			err = h.schedulerSvc.Start(c.Context())
		} else {
			ctx, cancel := context.WithTimeout(c.Context(), stopTimeout)
			defer cancel()
			err = h.schedulerSvc.Stop(ctx)
		}
		if err != nil {
			h.logger.Error("failed to apply auto-sync setting", zap.Bool("auto_sync", *req.AutoSync), zap.Error(err))
		}
	}

	return c.JSON(toSettingsResponse(settings))
}

func (h *Handler) toResponse(settings repositories.Settings) SchedulerResponse {
	return SchedulerResponse{
		Running:  h.schedulerSvc.IsRunning(),
		AutoSync: settings.AutoSync,
		Jobs: lo.Map(h.schedulerSvc.Jobs(), func(job scheduler.Job, _ int) JobResponse {
			return JobResponse{
				URL:             job.URL,
				IntervalSeconds: int(job.Interval / time.Second),
				Spec:            job.Spec,
				Next:            lo.EmptyableToPtr(job.Next),
				Prev:            lo.EmptyableToPtr(job.Prev),
			}
		}),
	}
}

func toSettingsResponse(settings repositories.Settings) SettingsResponse {
	return SettingsResponse{
		AutoSync:            settings.AutoSync,
		DefaultSyncInterval: settings.DefaultSyncInterval,
		UpdatedAt:           lo.EmptyableToPtr(settings.UpdatedAt),
	}
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repositories.ErrInvalid):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, scheduler.ErrSchedulerStopped):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, scheduler.ErrInvalidInterval):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
