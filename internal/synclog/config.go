package synclog

type Config struct {
	Path string
}
