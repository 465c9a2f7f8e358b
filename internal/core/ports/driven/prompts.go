package driven

// PromptStore provides access to editorial instruction templates.
// Implementations may load them from files or embed them in the binary.
type PromptStore interface {
	// Load returns the template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptRefinePresets lists the quick refine instructions, one per line.
	PromptRefinePresets = "refine_presets"

	// PromptAuditFix turns an audit report into a refine instruction.
	// The template expects a single %s placeholder for the report.
	PromptAuditFix = "audit_fix"
)
