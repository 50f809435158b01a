// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// boolToString convierte booleano a string visual
func boolToString(b bool) string {
	if b {
		return StyleSuccess.Sprint("ON")
	}
	return StyleSecondary.Sprint("OFF")
}

// ParseStatus traduce el estado final de un módulo a un Status visual.
func ParseStatus(s string) Status {
	switch s {
	case "succeeded":
		return StatusSuccess
	case "failed":
		return StatusError
	case "skipped":
		return StatusSkipped
	case "aborted":
		return StatusAborted
	case "not_run":
		return StatusPending
	case "paused":
		return StatusPaused
	case "running":
		return StatusRunning
	default:
		return StatusWarning
	}
}
