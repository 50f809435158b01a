// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para salidas sin TTY: una línea por
// evento, apta para redirigir a fichero.
type RawPresenter struct {
	format    LogFormat
	out       io.Writer
	mu        sync.Mutex
	startTime time.Time
}

// NewRawPresenter crea un RawPresenter sobre stdout
func NewRawPresenter(format LogFormat) *RawPresenter {
	return NewRawPresenterWriter(os.Stdout, format)
}

// NewRawPresenterWriter crea un RawPresenter sobre w
func NewRawPresenterWriter(w io.Writer, format LogFormat) *RawPresenter {
	return &RawPresenter{
		format:    format,
		out:       w,
		startTime: time.Now(),
	}
}

// log escribe un evento en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt con claves ordenadas
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}
	if len(fields) > 0 {
		data := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			if d, ok := v.(time.Duration); ok {
				v = d.String()
			}
			data[k] = v
		}
		entry["data"] = data
	}

	b, _ := json.Marshal(entry)
	fmt.Fprintln(r.out, string(b))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Banner no imprime nada en modo raw
func (r *RawPresenter) Banner() {}

// Start registra el inicio de un target
func (r *RawPresenter) Start(info ScanInfo) {
	r.mu.Lock()
	r.startTime = time.Now()
	r.mu.Unlock()

	r.log("INFO", "scan_started", map[string]interface{}{
		"target":     info.Target,
		"kind":       info.Kind,
		"directory":  info.Directory,
		"modules":    strings.Join(info.Modules, ","),
		"unattended": info.Unattended,
	})
}

// StartModule registra el lanzamiento de un módulo
func (r *RawPresenter) StartModule(m ModuleInfo) {
	r.log("INFO", "module_started", map[string]interface{}{
		"module":  m.Name,
		"index":   m.Index,
		"total":   m.Total,
		"command": m.Command,
	})
}

// ModuleState registra pausas y reanudaciones
func (r *RawPresenter) ModuleState(name string, status Status, note string) {
	fields := map[string]interface{}{"module": name, "state": status.String()}
	if note != "" {
		fields["note"] = note
	}
	r.log("INFO", "module_state", fields)
}

// FinishModule registra el resultado de un módulo
func (r *RawPresenter) FinishModule(res ModuleResult) {
	level := "INFO"
	if res.Status == StatusError || res.Status == StatusAborted {
		level = "WARN"
	}
	r.log(level, "module_completed", map[string]interface{}{
		"module":    res.Name,
		"status":    res.Status.String(),
		"reason":    res.Reason,
		"exit_code": res.ExitCode,
		"duration":  res.Duration,
	})
}

// ControlMenu registra la apertura del menú de control
func (r *RawPresenter) ControlMenu(info ControlInfo) {
	r.log("INFO", "control_menu", map[string]interface{}{
		"module":  info.Module,
		"phase":   info.Phase,
		"options": "p,r,s,q",
		"timeout": info.Timeout,
	})
}

// Menu imprime una opción por línea
func (r *RawPresenter) Menu(title string, entries []MenuEntry) {
	r.log("INFO", title, nil)
	for _, e := range entries {
		r.log("INFO", "menu_entry", map[string]interface{}{"key": e.Key, "label": e.Label})
	}
}

// Prompt registra una pregunta al operador
func (r *RawPresenter) Prompt(question string) {
	r.log("INFO", "prompt", map[string]interface{}{"question": question})
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish registra el resumen de un target
func (r *RawPresenter) Finish(stats ScanStats) {
	r.log("INFO", "scan_completed", map[string]interface{}{
		"target":    stats.Target,
		"duration":  stats.Duration,
		"succeeded": stats.Succeeded,
		"failed":    stats.Failed,
		"skipped":   stats.Skipped,
		"aborted":   stats.Aborted,
		"not_run":   stats.NotRun,
		"sections":  stats.Sections,
		"final":     stats.FinalJSON,
		"quit":      stats.Quit,
	})
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
