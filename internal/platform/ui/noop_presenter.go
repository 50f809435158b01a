// internal/platform/ui/noop_presenter.go
package ui

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet o headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Banner()                                        {}
func (n *NoopPresenter) Start(info ScanInfo)                            {}
func (n *NoopPresenter) StartModule(m ModuleInfo)                       {}
func (n *NoopPresenter) ModuleState(name string, s Status, note string) {}
func (n *NoopPresenter) FinishModule(r ModuleResult)                    {}
func (n *NoopPresenter) ControlMenu(info ControlInfo)                   {}
func (n *NoopPresenter) Menu(title string, entries []MenuEntry)         {}
func (n *NoopPresenter) Prompt(question string)                         {}
func (n *NoopPresenter) Info(msg string)                                {}
func (n *NoopPresenter) Warning(msg string)                             {}
func (n *NoopPresenter) Error(msg string)                               {}
func (n *NoopPresenter) Finish(stats ScanStats)                         {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
