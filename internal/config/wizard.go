package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to litscout! Let's point it at your research backend.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend URL.
	urlPrompt := promptui.Prompt{
		Label: "Backend API base URL (e.g. https://api.example.com)",
		Validate: func(s string) error {
			u, err := url.Parse(strings.TrimSpace(s))
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("enter an absolute http(s) URL")
			}
			return nil
		},
	}
	apiURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")

	// 2. Default project. Optional; commands accept --project too.
	projectPrompt := promptui.Prompt{
		Label:   "Default project name (leave empty to pass --project per command)",
		Default: "",
	}
	project, err := projectPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	cfg.Project = strings.TrimSpace(project)

	// 3. Dashboard port.
	portPrompt := promptui.Prompt{
		Label:   "Local dashboard port",
		Default: strconv.Itoa(DefaultDashboardPort),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dashboard port: %w", err)
	}
	cfg.Dashboard.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Next: `litscout auth register` or `litscout auth login`.")

	return cfg, nil
}
