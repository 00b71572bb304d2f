package config

// Config is the relay's process-wide configuration. It is built once at
// startup and never mutated afterwards; request handling only ever sees it
// through the values passed into server construction.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

// UpstreamConfig locates the Duke LLM API and carries the credential the
// relay injects on every outbound call. Neither value is ever echoed to
// callers.
type UpstreamConfig struct {
	APIURL string
	APIKey string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 3001,
		},
		Upstream: UpstreamConfig{
			APIURL: "https://litellm.oit.duke.edu/v1/chat/completions",
			APIKey: "sk-dwAYbKw4KalzudSkQVcOWg",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults overlaid with environment
// variables (PORT, DUKE_API_URL, DUKE_API_KEY, LOG_LEVEL). Unset or empty
// variables keep their defaults; unparseable values warn on stderr and keep
// the default rather than failing startup.
func Load() Config {
	cfg := defaults()
	applyEnvOverrides(&cfg)
	return cfg
}
