package config

// Source identifies an article retrieval source.
type Source string

const (
	SourcePubMed  Source = "pubmed"
	SourceScholar Source = "scholar"
	SourceBoth    Source = "both"
)

// Config is the top-level litscout configuration, corresponding to .litscout.yml.
type Config struct {
	APIURL         string          `yaml:"api_url" koanf:"api_url"`
	Project        string          `yaml:"project" koanf:"project"`
	RequestTimeout int             `yaml:"request_timeout" koanf:"request_timeout"`
	Dashboard      DashboardConfig `yaml:"dashboard" koanf:"dashboard"`
}

// DashboardConfig holds settings for the local dashboard server.
type DashboardConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
