package git

type AuthConfig struct {
	HTTPS HTTPSAuthConfig
}

type HTTPSAuthConfig struct {
	// DefaultToken is used for private repositories. Empty means unauthenticated.
	DefaultToken    string
	DefaultUsername string
}

type Config struct {
	// Depth limits clone history; 0 clones everything.
	Depth int
	Auth  AuthConfig
}
