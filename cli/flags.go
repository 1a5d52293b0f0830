package cli

var (
	verbose    bool
	configPath string

	// for find, exists, find all and nth
	offsetX int
	offsetY int

	// for region set
	regionOffsets string

	// for text command
	textLocator string
	textIndex   int
	textZone    string

	// for scroll command
	scrollLocator string

	// for screenshot command
	screenshotAnchor      string
	screenshotOutputPath  string
	screenshotFormat      string
	screenshotJpegQuality int

	// for wait and vanish
	waitTimeout float64
	waitForever bool

	// for settings command
	settingsTimeout      float64
	settingsImageLibrary string
	settingsWhitelist    string
)
