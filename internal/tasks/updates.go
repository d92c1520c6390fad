package tasks

import (
	"fmt"

	"github.com/desertthunder/pbin/internal/formatter"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ExportPastes Phase = iota
	WriteManifest
	ImportPastes
)

func (p Phase) String() string {
	switch p {
	case ExportPastes:
		return "export_pastes"
	case WriteManifest:
		return "write_manifest"
	case ImportPastes:
		return "import_pastes"
	default:
		return ""
	}
}

func exportStartedUpdate(total int, format formatter.Format, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPastes,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d pastes as %s to %s...", total, format, dir),
	}
}

func exportCompletedUpdate(step, total int, res PasteExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPastes,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Title),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res PasteExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPastes,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, res.Title, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}

func importUpdate(step, total int, title, outcome string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportPastes,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, outcome, title),
	}
}
