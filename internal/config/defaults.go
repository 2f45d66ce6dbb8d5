package config

// DefaultDashboardPort is the port the local dashboard binds when the
// config does not say otherwise.
const DefaultDashboardPort = 8790

// DefaultConfig returns a Config populated with sensible defaults.
// The API URL has no default: litscout cannot guess where the research
// backend lives, so Validate rejects an empty value.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout: 0,
		Dashboard: DashboardConfig{
			Port: DefaultDashboardPort,
		},
	}
}
