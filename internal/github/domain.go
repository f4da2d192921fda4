package github

import (
	"fmt"
	"regexp"
	"time"
)

//nolint:gochecknoglobals //compiled once
var urlPattern = regexp.MustCompile(`(?i)github\.com[/:]([\w-]+)/([\w.-]+?)(?:\.git)?$`)

// Metadata describes a repository as reported by the GitHub API.
type Metadata struct {
	Owner         string
	Name          string
	FullName      string
	Description   string
	IsPrivate     bool
	DefaultBranch string
	CloneURL      string
	SSHURL        string
	PushedAt      *time.Time
}

// ParseURL extracts owner and repository name from an HTTPS or SSH GitHub URL.
func ParseURL(url string) (string, string, error) {
	match := urlPattern.FindStringSubmatch(url)
	if match == nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	return match[1], match[2], nil
}
