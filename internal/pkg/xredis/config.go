package xredis

// Config locates the Redis backing store. URL takes priority over Addr.
type Config struct {
	URL      string `conf:"url" yaml:"url" json:"url"`
	Addr     string `conf:"addr" yaml:"addr" json:"addr"`
	Username string `conf:"username" yaml:"username" json:"username"`
	Password string `conf:"password" yaml:"password" json:"password"`
	DB       int    `conf:"db" yaml:"db" json:"db"`
}
