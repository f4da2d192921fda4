package repositories

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pullgit/pullgit/internal/deployments"
	"github.com/pullgit/pullgit/internal/github"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/scheduler"
	"github.com/pullgit/pullgit/internal/server/validation"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	reposSvc       *repositories.Service
	syncSvc        *syncer.Service
	schedulerSvc   *scheduler.Service
	deploymentsSvc *deployments.Service
	githubClient   *github.Client

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	reposSvc *repositories.Service,
	syncSvc *syncer.Service,
	schedulerSvc *scheduler.Service,
	deploymentsSvc *deployments.Service,
	githubClient *github.Client,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		reposSvc:       reposSvc,
		syncSvc:        syncSvc,
		schedulerSvc:   schedulerSvc,
		deploymentsSvc: deploymentsSvc,
		githubClient:   githubClient,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r.Post("/sync", h.errorsHandler, validation.DecorateWithQueryEx(h.validator, h.syncBatch))
	r.Get("/status", h.errorsHandler, h.statusAll)

	r = r.Group("/repositories")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Get("/", h.list)
	r.Get("/:name", h.get)
	r.Patch("/:name", validation.DecorateWithBodyEx(h.validator, h.patch))
	r.Delete("/:name", h.delete)
	r.Post("/:name/sync", h.sync)
	r.Get("/:name/status", h.status)
	r.Get("/:name/deployment", h.deployment)
}

//	@Summary		Add a repository
//	@Description	Register a repository to mirror. Name, full name and visibility are resolved through the GitHub API when omitted.
//	@Tags			repositories
//	@Accept			json
//	@Produce		json
//	@Param			repository	body		POSTRequest	true	"Repository"
//	@Success		201			{object}	RepositoryResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Failure		409			{object}	fiberfx.ErrorResponse
//	@Router			/repositories [post]
//
// Add a repository.
func (h *Handler) post(c *fiber.Ctx, req *POSTRequest) error {
	draft := repositories.RepositoryDraft{
		URL:                 req.URL,
		Name:                req.Name,
		FullName:            req.FullName,
		IsPrivate:           lo.FromPtr(req.IsPrivate),
		DeploymentType:      req.DeploymentType,
		SyncIntervalSeconds: req.SyncInterval,
		AutoSync:            req.AutoSync,
	}

	if req.Name == "" || req.FullName == "" || req.IsPrivate == nil {
		if err := h.resolve(c, req, &draft); err != nil {
			return err
		}
	}

	repo, err := h.reposSvc.Add(c.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to add repository: %w", err)
	}

	if repo.Schedulable() && h.schedulerSvc.IsRunning() {
		if scheduleErr := h.schedulerSvc.ScheduleRepository(*repo); scheduleErr != nil {
			h.logger.Error("failed to schedule repository", zap.String("url", repo.URL), zap.Error(scheduleErr))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(h.toResponse(repo))
}

// resolve fills the fields the client left out from GitHub, falling back to the URL itself.
func (h *Handler) resolve(c *fiber.Ctx, req *POSTRequest, draft *repositories.RepositoryDraft) error {
	meta, err := h.githubClient.Resolve(c.Context(), req.URL)
	switch {
	case err == nil:
		draft.Name = lo.CoalesceOrEmpty(req.Name, meta.Name)
		draft.FullName = lo.CoalesceOrEmpty(req.FullName, meta.FullName)
		if req.IsPrivate == nil {
			draft.IsPrivate = meta.IsPrivate
		}
	case errors.Is(err, github.ErrInvalidURL):
		if req.Name == "" || req.FullName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and full_name are required for repositories outside GitHub")
		}
	default:
		h.logger.Warn("failed to resolve repository metadata", zap.String("url", req.URL), zap.Error(err))

		owner, name, _ := github.ParseURL(req.URL)
		draft.Name = lo.CoalesceOrEmpty(req.Name, name)
		draft.FullName = lo.CoalesceOrEmpty(req.FullName, owner+"/"+name)
	}

	return nil
}

//	@Summary		List repositories
//	@Description	Retrieve every registered repository
//	@Tags			repositories
//	@Produce		json
//	@Success		200	{array}	RepositoryResponse
//	@Router			/repositories [get]
//
// List repositories.
func (h *Handler) list(c *fiber.Ctx) error {
	repos, err := h.reposSvc.List(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	return c.JSON(lo.Map(repos, func(repo repositories.Repository, _ int) RepositoryResponse {
		return h.toResponse(&repo)
	}))
}

//	@Summary		Get a repository
//	@Description	Retrieve a repository by name or full name
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name or full name"
//	@Success		200		{object}	RepositoryResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name} [get]
//
// Get a repository.
func (h *Handler) get(c *fiber.Ctx) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	return c.JSON(h.toResponse(repo))
}

//	@Summary		Update a repository
//	@Description	Update the settings of a repository. Its sync job is rescheduled to match.
//	@Tags			repositories
//	@Accept			json
//	@Produce		json
//	@Param			name		path		string			true	"Repository name or full name"
//	@Param			repository	body		PATCHRequest	false	"Repository update"
//	@Success		200			{object}	RepositoryResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Failure		404			{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name} [patch]
//
// Update a repository.
func (h *Handler) patch(c *fiber.Ctx, req *PATCHRequest) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	updated, err := h.reposSvc.Update(c.Context(), repo.URL, repositories.RepositoryUpdate{
		FullName:            req.FullName,
		IsPrivate:           req.IsPrivate,
		DeploymentType:      req.DeploymentType,
		SyncIntervalSeconds: req.SyncInterval,
		AutoSync:            req.AutoSync,
	})
	if err != nil {
		return fmt.Errorf("failed to update repository: %w", err)
	}

	if restartErr := h.schedulerSvc.RestartRepository(*updated); restartErr != nil {
		h.logger.Error("failed to reschedule repository", zap.String("url", updated.URL), zap.Error(restartErr))
	}

	return c.JSON(h.toResponse(updated))
}

//	@Summary		Remove a repository
//	@Description	Stop syncing a repository and forget it. The working copy stays on disk.
//	@Tags			repositories
//	@Param			name	path	string	true	"Repository name or full name"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name} [delete]
//
// Remove a repository.
func (h *Handler) delete(c *fiber.Ctx) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	h.schedulerSvc.StopRepository(repo.URL)

	if removeErr := h.reposSvc.Remove(c.Context(), repo.URL); removeErr != nil {
		return fmt.Errorf("failed to remove repository: %w", removeErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Sync a repository
//	@Description	Clone the repository if its working copy is missing, pull it otherwise
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name or full name"
//	@Success		200		{object}	SyncResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		502		{object}	fiberfx.ErrorResponse
//	@Failure		504		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/sync [post]
//
// Sync a repository.
func (h *Handler) sync(c *fiber.Ctx) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	result, err := h.syncSvc.SyncRepository(c.Context(), *repo)
	if err != nil {
		return fmt.Errorf("failed to sync %s: %w", repo.Name, err)
	}

	return c.JSON(toSyncResponse(result))
}

//	@Summary		Sync repositories
//	@Description	Sync every repository, or the one matching name. Failures are reported per repository.
//	@Tags			repositories
//	@Produce		json
//	@Param			name	query	string	false	"Repository name or full name"
//	@Success		200		{array}	SyncResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/sync [post]
//
// Sync repositories.
func (h *Handler) syncBatch(c *fiber.Ctx, req *SyncQuery) error {
	var repos []repositories.Repository
	if req.Name != "" {
		repo, err := h.reposSvc.Find(c.Context(), req.Name)
		if err != nil {
			return fmt.Errorf("failed to find repository: %w", err)
		}
		repos = []repositories.Repository{*repo}
	} else {
		all, err := h.reposSvc.List(c.Context())
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}
		repos = all
	}

	results := h.syncSvc.SyncAll(c.Context(), repos)

	return c.JSON(lo.Map(results, func(result syncer.Result, _ int) SyncResponse {
		return toSyncResponse(result)
	}))
}

//	@Summary		Get repository status
//	@Description	Inspect the working copy of a repository
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name or full name"
//	@Success		200		{object}	StatusResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/status [get]
//
// Get repository status.
func (h *Handler) status(c *fiber.Ctx) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	status, err := h.syncSvc.Status(c.Context(), *repo)
	if err != nil {
		return fmt.Errorf("failed to get status of %s: %w", repo.Name, err)
	}

	return c.JSON(toStatusResponse(status))
}

//	@Summary		Get status of all repositories
//	@Description	Inspect every working copy. Repositories that were never synced are reported as not cloned.
//	@Tags			repositories
//	@Produce		json
//	@Success		200	{array}	StatusResponse
//	@Router			/status [get]
//
// Get status of all repositories.
func (h *Handler) statusAll(c *fiber.Ctx) error {
	repos, err := h.reposSvc.List(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	responses := make([]StatusResponse, 0, len(repos))
	for _, repo := range repos {
		status, statusErr := h.syncSvc.Status(c.Context(), repo)
		switch {
		case statusErr == nil:
			responses = append(responses, toStatusResponse(status))
		case errors.Is(statusErr, syncer.ErrNotFound):
			responses = append(responses, StatusResponse{
				URL:      repo.URL,
				Name:     repo.Name,
				Path:     h.syncSvc.Path(repo),
				LastSync: repo.LastSync,
				Message:  "not cloned yet",
			})
		default:
			responses = append(responses, StatusResponse{
				URL:      repo.URL,
				Name:     repo.Name,
				Path:     h.syncSvc.Path(repo),
				Cloned:   true,
				LastSync: repo.LastSync,
				Message:  statusErr.Error(),
			})
		}
	}

	return c.JSON(responses)
}

//	@Summary		Get deployment plan
//	@Description	Resolve the deployment type of a repository against its working copy
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name or full name"
//	@Success		200		{object}	DeploymentResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/deployment [get]
//
// Get deployment plan.
func (h *Handler) deployment(c *fiber.Ctx) error {
	repo, err := h.find(c)
	if err != nil {
		return err
	}

	plan, err := h.deploymentsSvc.Plan(*repo, h.syncSvc.Path(*repo))
	if err != nil {
		return fmt.Errorf("failed to plan deployment of %s: %w", repo.Name, err)
	}

	return c.JSON(toDeploymentResponse(plan))
}

func (h *Handler) find(c *fiber.Ctx) (*repositories.Repository, error) {
	// Full names arrive with an escaped slash.
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	repo, err := h.reposSvc.Find(c.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository: %w", err)
	}

	return repo, nil
}

func (h *Handler) toResponse(repo *repositories.Repository) RepositoryResponse {
	return toRepositoryResponse(repo, h.schedulerSvc.HasJob(repo.URL))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, syncer.ErrNotFound),
		errors.Is(err, deployments.ErrNotFound),
		errors.Is(err, deployments.ErrNotSpecified):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrConflict),
		errors.Is(err, syncer.ErrSyncInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrInvalid),
		errors.Is(err, repositories.ErrNotAllowed):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, syncer.ErrTimeout):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	case errors.Is(err, syncer.ErrCloneFailed),
		errors.Is(err, syncer.ErrPullFailed),
		errors.Is(err, syncer.ErrAuthFailed):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
