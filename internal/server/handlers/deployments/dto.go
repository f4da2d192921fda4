package deployments

import "github.com/pullgit/pullgit/internal/deployments"

// TypeResponse represents a deployment type of the catalog.
type TypeResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Requirements  []string       `json:"requirements"`
	SetupScript   string         `json:"setup_script"`
	RestartScript string         `json:"restart_script"`
	Config        map[string]any `json:"config"`
}

func ToTypeResponse(t deployments.Type) TypeResponse {
	return TypeResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Requirements:  t.Requirements,
		SetupScript:   t.SetupScript,
		RestartScript: t.RestartScript,
		Config:        t.Config,
	}
}
