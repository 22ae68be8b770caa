package config

import "fmt"

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is light, dark or auto (detect from the terminal).
	Theme string `yaml:"theme"`
}

// Validate checks the theme name.
func (c UIConfig) Validate() error {
	switch c.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
		return nil
	}
	return fmt.Errorf("invalid ui.theme %q (valid: auto, light, dark)", c.Theme)
}
