package deployments

// Type describes how a working copy is meant to be served. Script names refer to
// provisioning scripts that live outside this program.
type Type struct {
	ID            string
	Name          string
	Description   string
	Requirements  []string
	SetupScript   string
	RestartScript string
	Config        map[string]any
}

// Plan is the metadata handed to whoever runs the deployment.
type Plan struct {
	Type       Type
	Repository string // Working copy name
	FullName   string
	Path       string // Working copy directory
	Command    string // Suggested setup invocation
}
