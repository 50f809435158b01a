// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar paneles, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	scanInfo      ScanInfo
	scanStartTime time.Time
	current       string
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Banner imprime la cabecera, reducida si la terminal es estrecha
func (p *PTermPresenter) Banner() {
	p.mu.Lock()
	defer p.mu.Unlock()

	banner := VajraBanner
	if pterm.GetTerminalWidth() < 60 {
		banner = VajraBannerMinimal
	}
	StylePrimary.Println(banner)
}

// Start muestra el panel del target
func (p *PTermPresenter) Start(info ScanInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scanInfo = info
	p.scanStartTime = time.Now()

	title := "VAJRA - Reconnaissance Pipeline"
	if info.Total > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, info.Index, info.Total)
	}
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println(title)
	pterm.Println()

	content := fmt.Sprintf("%s Target: %s (%s)\n", IconTarget, pterm.Cyan(info.Target), info.Kind)
	content += fmt.Sprintf("%s Output: %s\n", IconFolder, info.Directory)
	content += fmt.Sprintf("%s Modules: %s\n", IconModule, strings.Join(info.Modules, ", "))
	content += fmt.Sprintf("   Unattended: %s", boolToString(info.Unattended))
	if info.Trigger != "" {
		content += fmt.Sprintf("\n%s Control: type %s + Enter", IconControl, pterm.Yellow(info.Trigger))
	}

	pterm.DefaultBox.
		WithTitle("Scan Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgBlue)).
		Println(content)

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
}

// StartModule imprime la línea de arranque de un módulo
func (p *PTermPresenter) StartModule(m ModuleInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = m.Name
	title := fmt.Sprintf("%s [%d/%d] %s", StatusRunning.Symbol(), m.Index, m.Total, pterm.Cyan(m.Name))
	pterm.DefaultSection.WithLevel(2).Println(title)
	if m.Command != "" {
		pterm.Println(pterm.Gray("  $ " + m.Command))
	}
}

// ModuleState imprime pausas y reanudaciones
func (p *PTermPresenter) ModuleState(name string, status Status, note string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("  %s %s %s", status.Symbol(), name, status.String())
	if note != "" {
		line += " (" + note + ")"
	}
	status.Style().Println(line)
}

// FinishModule imprime el resultado de un módulo
func (p *PTermPresenter) FinishModule(r ModuleResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = ""
	line := fmt.Sprintf("  %s %s %s", r.Status.Symbol(), r.Name, r.Status.String())
	if r.Reason != "" && r.Reason != "-" {
		line += " [" + r.Reason + "]"
	}
	if r.Duration > 0 {
		line += fmt.Sprintf(" (%s)", formatDuration(r.Duration))
	}
	r.Status.Style().Println(line)
	if r.Detail != "" && r.Status == StatusError {
		pterm.Println(pterm.Gray("    " + strings.ReplaceAll(strings.TrimSpace(r.Detail), "\n", "\n    ")))
	}
}

// ControlMenu dibuja el menú de control
func (p *PTermPresenter) ControlMenu(info ControlInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	module := info.Module
	if module == "" {
		module = "none"
	}
	content := fmt.Sprintf("Module: %s (%s)\n\n", pterm.Cyan(module), info.Phase)
	content += "  p  pause\n  r  resume\n  s  skip module\n  q  quit scan\n  *  return"

	pterm.Println()
	pterm.DefaultBox.
		WithTitle(fmt.Sprintf("%s Control (%s)", IconControl, formatDuration(info.Timeout))).
		WithTitleTopLeft().
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		Println(content)
}

// Menu dibuja una lista numerada
func (p *PTermPresenter) Menu(title string, entries []MenuEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultSection.Println(title)
	data := pterm.TableData{{"#", "Module", "Description"}}
	for _, e := range entries {
		data = append(data, []string{e.Key, e.Label, e.Description})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// Prompt imprime una pregunta sin salto de línea
func (p *PTermPresenter) Prompt(question string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Print(StyleWarning.Sprint("? ") + question + " ")
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish imprime el resumen del target
func (p *PTermPresenter) Finish(stats ScanStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))

	header := pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgBlack))
	if stats.Quit {
		header.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).Println("Scan Stopped")
	} else {
		header.WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).Println("Scan Completed")
	}

	content := fmt.Sprintf("%s Target: %s\n", IconTarget, pterm.Cyan(stats.Target))
	content += fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.Duration)))
	content += fmt.Sprintf("   Succeeded: %s  Failed: %s  Skipped: %s\n",
		pterm.Green(stats.Succeeded), pterm.Red(stats.Failed), pterm.Gray(stats.Skipped))
	if stats.Aborted > 0 || stats.NotRun > 0 {
		content += fmt.Sprintf("   Aborted: %d  Not run: %d\n", stats.Aborted, stats.NotRun)
	}
	content += fmt.Sprintf("   Sections: %d", stats.Sections)
	if stats.FinalJSON != "" {
		content += fmt.Sprintf("\n%s JSON: %s", IconReport, stats.FinalJSON)
	}
	if stats.Report != "" {
		content += fmt.Sprintf("\n%s HTML: %s", IconReport, stats.Report)
	}

	pterm.DefaultBox.
		WithTitle("Scan Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Println(content)
	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	return nil
}
