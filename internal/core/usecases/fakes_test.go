// internal/core/usecases/fakes_test.go
package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/store"
)

// Descriptores con la misma forma de dependencias que los módulos reales.
var (
	descWhois = domain.ModuleDescriptor{
		ID: "1", Name: "whois", Order: 1,
		Produces: []string{domain.ArtifactWhois},
	}
	descDig = domain.ModuleDescriptor{
		ID: "7", Name: "dig", Order: 2,
		Produces: []string{domain.ArtifactDig},
	}
	descSubfinder = domain.ModuleDescriptor{
		ID: "2", Name: "subfinder", Order: 3,
		Produces: []string{domain.ArtifactSubfinder},
	}
	descAmass = domain.ModuleDescriptor{
		ID: "3", Name: "amass", Order: 4,
		Produces: []string{domain.ArtifactAmass},
	}
	descHttpx = domain.ModuleDescriptor{
		ID: "4", Name: "httpx", Order: 5,
		Requires: []domain.InputSpec{{
			Kind:           "subdomains",
			Sources:        []string{domain.ArtifactSubfinder, domain.ArtifactAmass},
			Merged:         domain.ArtifactMerged,
			TargetFallback: true,
		}},
		Produces: []string{domain.ArtifactAliveJSON, domain.ArtifactAlive},
		Critical: true,
	}
	descNmap = domain.ModuleDescriptor{
		ID: "5", Name: "nmap", Order: 6,
		Requires: []domain.InputSpec{{
			Kind:           "live-hosts",
			Sources:        []string{domain.ArtifactAlive},
			TargetFallback: true,
		}},
		Produces: []string{domain.ArtifactNmapGlob},
		Defaults: domain.Params{"scan": "quick"},
		Choices:  map[string][]string{"scan": {"quick", "full", "fast", "udp"}},
	}
	descScreenshot = domain.ModuleDescriptor{
		ID: "6", Name: "screenshot", Order: 7,
		Requires: []domain.InputSpec{{
			Kind:           "live-hosts",
			Sources:        []string{domain.ArtifactAlive},
			TargetFallback: true,
		}},
	}
)

func allDescriptors() []domain.ModuleDescriptor {
	return []domain.ModuleDescriptor{descWhois, descDig, descSubfinder, descAmass, descHttpx, descNmap, descScreenshot}
}

// fakeModule construye comandos triviales y registra sus invocaciones.
type fakeModule struct {
	desc     domain.ModuleDescriptor
	buildErr error

	mu       sync.Mutex
	invs     []ports.Invocation
	afterRun int
}

func newFakeModule(d domain.ModuleDescriptor) *fakeModule { return &fakeModule{desc: d} }

func (m *fakeModule) Descriptor() domain.ModuleDescriptor { return m.desc }

func (m *fakeModule) Build(inv ports.Invocation) (ports.Command, error) {
	m.mu.Lock()
	m.invs = append(m.invs, inv)
	m.mu.Unlock()
	if m.buildErr != nil {
		return ports.Command{}, m.buildErr
	}
	return ports.Command{Module: m.desc.Name, Path: m.desc.Name, Args: []string{inv.Input.String()}}, nil
}

func (m *fakeModule) AfterRun(ports.Invocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.afterRun++
	return nil
}

func (m *fakeModule) invocations() []ports.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Invocation(nil), m.invs...)
}

func fakeModules(descs ...domain.ModuleDescriptor) ([]ports.Module, map[domain.ModuleID]*fakeModule) {
	mods := make([]ports.Module, 0, len(descs))
	byID := make(map[domain.ModuleID]*fakeModule, len(descs))
	for _, d := range descs {
		m := newFakeModule(d)
		mods = append(mods, m)
		byID[d.ID] = m
	}
	return mods, byID
}

// fakeProcess es un proceso controlado por el test.
type fakeProcess struct {
	pid      int
	done     chan struct{}
	pauseErr error

	// stubborn sobrevive a Terminate: el hijo sigue sin recoger
	stubborn bool

	mu         sync.Mutex
	exited     bool
	code       int
	pauses     int
	resumes    int
	terminated bool
}

func newFakeProcess(pid int) *fakeProcess {
	return &fakeProcess{pid: pid, done: make(chan struct{})}
}

func (p *fakeProcess) exit(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exited {
		return
	}
	p.exited, p.code = true, code
	close(p.done)
}

func (p *fakeProcess) PID() int              { return p.pid }
func (p *fakeProcess) Done() <-chan struct{} { return p.done }

func (p *fakeProcess) Poll() (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.exited {
		return false, -1
	}
	return true, p.code
}

func (p *fakeProcess) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses++
	return p.pauseErr
}

func (p *fakeProcess) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resumes++
	return p.pauseErr
}

func (p *fakeProcess) Terminate(time.Duration) error {
	p.mu.Lock()
	p.terminated = true
	stubborn := p.stubborn
	p.mu.Unlock()
	if !stubborn {
		p.exit(-1)
	}
	return nil
}

func (p *fakeProcess) Detail() string { return "" }

func (p *fakeProcess) counts() (pauses, resumes int, terminated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauses, p.resumes, p.terminated
}

// fakeLauncher decide por módulo qué pasa al lanzarlo.
type fakeLauncher struct {
	// run se invoca con el comando y el proceso recién creado; puede
	// escribir artifacts y terminar el proceso. nil = salir con 0.
	run map[string]func(cmd ports.Command, p *fakeProcess)

	// fail hace que Start devuelva error para esos módulos
	fail map[string]bool

	// pauseErr lo devuelven Pause/Resume de todos los procesos
	pauseErr error

	// stubborn hace que Terminate no termine los procesos
	stubborn bool

	mu      sync.Mutex
	started []string
	procs   map[string]*fakeProcess
	nextPID int
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{
		run:   map[string]func(ports.Command, *fakeProcess){},
		fail:  map[string]bool{},
		procs: map[string]*fakeProcess{},
	}
}

func (l *fakeLauncher) Start(_ context.Context, cmd ports.Command) (ports.Process, error) {
	l.mu.Lock()
	if l.fail[cmd.Module] {
		l.mu.Unlock()
		return nil, errors.Wrapf(errors.ErrNotFound, "%s: executable not found", cmd.Path)
	}
	l.nextPID++
	p := newFakeProcess(1000 + l.nextPID)
	p.pauseErr = l.pauseErr
	p.stubborn = l.stubborn
	l.started = append(l.started, cmd.Module)
	l.procs[cmd.Module] = p
	run := l.run[cmd.Module]
	l.mu.Unlock()

	if run == nil {
		p.exit(0)
	} else {
		run(cmd, p)
	}
	return p, nil
}

func (l *fakeLauncher) startedModules() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.started...)
}

func (l *fakeLauncher) process(name string) *fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.procs[name]
}

// writes devuelve un run que escribe artifacts en Logs y sale con 0.
func writes(layout store.Layout, artifacts map[string][]string) func(ports.Command, *fakeProcess) {
	return func(_ ports.Command, p *fakeProcess) {
		for name, lines := range artifacts {
			if err := layout.WriteLinesAtomic(name, lines); err != nil {
				panic(fmt.Sprintf("write %s: %v", name, err))
			}
		}
		p.exit(0)
	}
}

// hangs deja el proceso vivo hasta que lo terminen.
func hangs(_ ports.Command, _ *fakeProcess) {}

// fakeOperator responde preguntas en orden.
type fakeOperator struct {
	mu      sync.Mutex
	answers []string
	err     error
	asked   []string

	// onPrompt simula lo que hace el operador mientras responde
	onPrompt func()
}

func (o *fakeOperator) Prompt(_ context.Context, question string, _ time.Duration) (string, error) {
	if o.onPrompt != nil {
		o.onPrompt()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.asked = append(o.asked, question)
	if o.err != nil {
		return "", o.err
	}
	if len(o.answers) == 0 {
		return "", errors.Wrap(errors.ErrTimeout, "operator input")
	}
	a := o.answers[0]
	o.answers = o.answers[1:]
	return a, nil
}

func (o *fakeOperator) questions() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.asked...)
}

func mustTarget(t *testing.T, raw string) domain.Target {
	t.Helper()
	tg, err := domain.NewTarget(raw)
	if err != nil {
		t.Fatalf("NewTarget(%q): %v", raw, err)
	}
	return tg
}

func newLayout(t *testing.T, target domain.Target) store.Layout {
	t.Helper()
	l, err := store.New(t.TempDir(), "", target, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return l
}

// planOf arma un plan con los pasos indicados en el orden dado.
func planOf(target domain.Target, interactive bool, descs ...domain.ModuleDescriptor) domain.ExecutionPlan {
	plan := domain.ExecutionPlan{Target: target, Unattended: !interactive}
	for _, d := range descs {
		plan.Steps = append(plan.Steps, domain.PlanStep{Module: d, Params: d.Defaults.Clone(), Interactive: interactive})
	}
	return plan
}

func outcomeByName(t *testing.T, res RunResult, name string) domain.ModuleOutcome {
	t.Helper()
	for _, o := range res.Outcomes {
		if o.Name == name {
			return o
		}
	}
	t.Fatalf("no outcome for %s in %+v", name, res.Outcomes)
	return domain.ModuleOutcome{}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func logsPath(layout store.Layout, name string) string {
	return filepath.Join(layout.Logs, name)
}
