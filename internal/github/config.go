package github

type Config struct {
	BaseURL string // Empty for api.github.com
	Token   string // Optional; anonymous requests see public repositories only
}
