package deployments

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestService_ListKeepsCatalogOrder(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))

	ids := lo.Map(svc.List(), func(t Type, _ int) string { return t.ID })
	assert.Equal(t, []string{"nodejs_nginx", "static_apache", "nodejs_pm2", "python_flask", "static_nginx"}, ids)
}

func TestService_GetReturnsCopies(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))

	flask, err := svc.Get("python_flask")
	require.NoError(t, err)
	assert.Equal(t, "Python Flask + Nginx", flask.Name)
	assert.Equal(t, 5000, flask.Config["port"])

	flask.Config["port"] = 1
	flask.Requirements[0] = "Ruby"

	again, err := svc.Get("python_flask")
	require.NoError(t, err)
	assert.Equal(t, 5000, again.Config["port"])
	assert.Equal(t, "Python3", again.Requirements[0])

	_, err = svc.Get("php_fpm")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Plan(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))
	repo := repositories.Repository{
		URL:            "https://github.com/acme/app",
		Name:           "app",
		FullName:       "acme/app",
		DeploymentType: "nodejs_nginx",
	}

	plan, err := svc.Plan(repo, "/srv/repos/app")
	require.NoError(t, err)
	assert.Equal(t, "nodejs_nginx", plan.Type.ID)
	assert.Equal(t, "/srv/repos/app", plan.Path)
	assert.Equal(t, "bash nodejs-nginx-setup.sh app /srv/repos/app", plan.Command)

	repo.DeploymentType = ""
	_, err = svc.Plan(repo, "/srv/repos/app")
	require.ErrorIs(t, err, ErrNotSpecified)

	repo.DeploymentType = "unknown"
	_, err = svc.Plan(repo, "/srv/repos/app")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterValidations(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))
	v := validator.New()
	require.NoError(t, RegisterValidations(v, svc))

	type request struct {
		DeploymentType string `validate:"deployment_type"`
	}

	require.NoError(t, v.Struct(request{DeploymentType: "static_nginx"}))
	require.NoError(t, v.Struct(request{}))
	require.Error(t, v.Struct(request{DeploymentType: "php_fpm"}))
}
