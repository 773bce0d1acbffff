package puzzle

// ConfigType says how a ConfigItem is presented to the user.
type ConfigType int

const (
	ConfigString ConfigType = iota
	ConfigChoices
	ConfigBoolean
)

// ConfigItem is one field of a settings dialog.
type ConfigItem struct {
	Name string
	Type ConfigType

	// Value holds the text of a ConfigString item.
	Value string
	// Choices and Selected describe a ConfigChoices item.
	Choices  []string
	Selected int
	// Checked holds a ConfigBoolean item.
	Checked bool
}
