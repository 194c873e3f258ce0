package domain

// ThemeMode is the persisted display preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode accepts only the two persisted values.
func ParseThemeMode(value string) (ThemeMode, bool) {
	switch ThemeMode(value) {
	case ThemeLight, ThemeDark:
		return ThemeMode(value), true
	default:
		return "", false
	}
}

// Toggle flips between light and dark.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
