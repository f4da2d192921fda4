package daemon

type Config struct {
	Name        string
	DisplayName string
	Description string
	Arguments   []string
}

func DefaultConfig() Config {
	return Config{
		Name:        "pullgit",
		DisplayName: "PullGit",
		Description: "Keeps local working copies of Git repositories in sync with their remotes",
		Arguments:   []string{"serve"},
	}
}
