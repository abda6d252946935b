package config

// UIConfig holds user interface configuration for the full-screen front end.
type UIConfig struct {
	// Theme is "light", "dark" or "auto" (detect from the terminal).
	Theme string `yaml:"theme"`
}

// ValidThemes lists all supported UI themes.
var ValidThemes = []string{"auto", "light", "dark"}
