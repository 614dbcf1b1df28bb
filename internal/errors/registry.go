package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Failed to render node",
		Detail:   "An error occurred while serializing a virtual node subtree. The wrapped error identifies the failing tag.",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Unsupported renderable value",
		Detail:   "The renderer was given a value it does not know how to serialize. Supported: strings, numbers, *vdom.VNode, Renderable, and slices of these.",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "Render canceled",
		Detail:   "The render pass was canceled by its context before completing.",
	},

	// ============================================
	// Validation Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryValidation,
		Message:  "Invalid element tag name",
		Detail:   "Element tag names must be non-empty and contain only letters, digits, and hyphens, starting with a letter.",
	},

	// ============================================
	// Lifecycle Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryLifecycle,
		Message:  "Hook listener panicked",
		Detail:   "A lifecycle hook listener panicked. The failure was contained at the component boundary and routed to its error hook.",
	},

	// ============================================
	// Cache Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryCache,
		Message:  "Value too large to cache",
		Detail:   "The rendered result exceeds the cache's memory budget on its own. It was returned to the caller but not cached.",
	},

	// ============================================
	// Config Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryConfig,
		Message:  "Failed to parse configuration file",
		Detail:   "The vellum.json configuration file could not be decoded.",
	},
	"E401": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its allowed range.",
	},
}

// Register adds a custom error template. Intended for applications that
// want their own coded errors alongside the framework's.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
