package domain

// DefaultRefinePresets are the quick instructions offered by the editor.
var DefaultRefinePresets = []string{
	"Corregir gramática y estilo",
	"Hacer más conciso",
	"Tono más formal",
	"Simplificar lenguaje",
}

// DefaultAuditFixTemplate turns an audit report into a refine instruction.
// It takes the report as its only %s argument.
const DefaultAuditFixTemplate = `Corrige el siguiente artículo basándote ESTRICTAMENTE en los errores detectados en este reporte de auditoría. Si el reporte dice "sin errores", mejora el estilo general.

REPORTE DE AUDITORÍA:
%s`
