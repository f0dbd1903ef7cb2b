package logging

// Component names for structured logging.
const (
	ComponentRenderer = "renderer"
	ComponentFonts    = "fonts"
	ComponentEncoder  = "encoder"
	ComponentCLI      = "cli"
)
