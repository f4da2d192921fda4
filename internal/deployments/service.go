package deployments

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Service struct {
	types map[string]Type

	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		types: lo.KeyBy(catalog, func(t Type) string { return t.ID }),

		logger: logger,
	}
}

// List returns every deployment type in catalog order.
func (s *Service) List() []Type {
	return lo.Map(catalog, func(t Type, _ int) Type { return clone(t) })
}

// Get returns the deployment type with the given id.
func (s *Service) Get(id string) (*Type, error) {
	t, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	t = clone(t)
	return &t, nil
}

// Exists reports whether id names a deployment type.
func (s *Service) Exists(id string) bool {
	_, ok := s.types[id]
	return ok
}

// Plan resolves the deployment type of repo against its working copy at path.
func (s *Service) Plan(repo repositories.Repository, path string) (*Plan, error) {
	if repo.DeploymentType == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotSpecified, repo.Name)
	}

	t, err := s.Get(repo.DeploymentType)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("deployment planned",
		zap.String("url", repo.URL),
		zap.String("type", t.ID),
		zap.String("path", path))

	return &Plan{
		Type:       *t,
		Repository: repo.Name,
		FullName:   repo.FullName,
		Path:       path,
		Command:    fmt.Sprintf("bash %s %s %s", t.SetupScript, repo.Name, path),
	}, nil
}

func clone(t Type) Type {
	t.Requirements = slices.Clone(t.Requirements)
	t.Config = maps.Clone(t.Config)
	return t
}
