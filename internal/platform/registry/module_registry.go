// internal/platform/registry/module_registry.go
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
)

// ModuleRegistry gestiona el registro y construcción de módulos.
// Implementa el patrón Registry + Factory para desacoplar la creación
// de módulos del código de aplicación.
type ModuleRegistry struct {
	mu      sync.RWMutex
	entries map[domain.ModuleID]entry
	logger  logx.Logger
}

type entry struct {
	factory ports.ModuleFactory
	desc    domain.ModuleDescriptor
}

// globalRegistry es la instancia global del registry.
var globalRegistry *ModuleRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *ModuleRegistry {
	once.Do(func() {
		globalRegistry = NewModuleRegistry(logx.New())
	})
	return globalRegistry
}

// NewModuleRegistry crea un nuevo registry de módulos.
func NewModuleRegistry(logger logx.Logger) *ModuleRegistry {
	return &ModuleRegistry{
		entries: make(map[domain.ModuleID]entry),
		logger:  logger.With("component", "module-registry"),
	}
}

// Register registra una factory con su descriptor.
// Típicamente llamado desde init() de cada módulo.
func (r *ModuleRegistry) Register(factory ports.ModuleFactory, desc domain.ModuleDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := desc.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for module %s", desc.Name)
	}
	if _, exists := r.entries[desc.ID]; exists {
		return fmt.Errorf("module id %s is already registered", desc.ID)
	}
	for _, e := range r.entries {
		if strings.EqualFold(e.desc.Name, desc.Name) {
			return fmt.Errorf("module %s is already registered", desc.Name)
		}
	}

	r.entries[desc.ID] = entry{factory: factory, desc: desc}
	r.logger.Debug("module registered", "id", desc.ID, "name", desc.Name, "order", desc.Order)
	return nil
}

// MustRegister es Register para init(): un descriptor inválido es un bug.
func (r *ModuleRegistry) MustRegister(factory ports.ModuleFactory, desc domain.ModuleDescriptor) {
	if err := r.Register(factory, desc); err != nil {
		panic(fmt.Sprintf("register module %s: %v", desc.Name, err))
	}
}

// Build construye todos los módulos registrados en orden canónico.
// configs es opcional por módulo; las claves desconocidas se ignoran con un
// warning.
func (r *ModuleRegistry) Build(configs map[domain.ModuleID]ports.ModuleConfig, logger logx.Logger) ([]ports.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	for id := range configs {
		if _, ok := r.entries[id]; !ok {
			r.logger.Warn("config for unregistered module ignored", "module", id)
		}
	}

	var errs []error
	modules := make([]ports.Module, 0, len(r.entries))
	for _, e := range r.sortedLocked() {
		cfg := configs[e.desc.ID]
		if err := ValidateNonNegativeDuration(e.desc.Name+".timeout", cfg.Timeout); err != nil {
			errs = append(errs, err)
			continue
		}

		m, err := e.factory(cfg, logger.With("module", e.desc.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to build module %s: %w", e.desc.Name, err))
			continue
		}
		modules = append(modules, m)
		r.logger.Debug("module built", "name", e.desc.Name, "binary", m.Descriptor().Binary)
	}

	for _, err := range errs {
		r.logger.Warn("module build error", "error", err.Error())
	}
	if len(modules) == 0 && len(r.entries) > 0 {
		return nil, fmt.Errorf("no modules could be built")
	}
	return modules, nil
}

// List devuelve los descriptores registrados en orden canónico.
func (r *ModuleRegistry) List() []domain.ModuleDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedLocked()
	out := make([]domain.ModuleDescriptor, len(sorted))
	for i, e := range sorted {
		out[i] = e.desc
	}
	return out
}

// Lookup resuelve un token de selección: id exacto o nombre sin distinguir
// mayúsculas.
func (r *ModuleRegistry) Lookup(token string) (domain.ModuleDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token = strings.TrimSpace(token)
	if e, ok := r.entries[domain.ModuleID(token)]; ok {
		return e.desc, true
	}
	for _, e := range r.entries {
		if strings.EqualFold(e.desc.Name, token) {
			return e.desc, true
		}
	}
	return domain.ModuleDescriptor{}, false
}

// IsRegistered verifica si un módulo está registrado.
func (r *ModuleRegistry) IsRegistered(id domain.ModuleID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[id]
	return exists
}

// Clear elimina todos los módulos registrados (útil para testing).
func (r *ModuleRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[domain.ModuleID]entry)
}

func (r *ModuleRegistry) sortedLocked() []entry {
	out := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].desc.Order != out[j].desc.Order {
			return out[i].desc.Order < out[j].desc.Order
		}
		return out[i].desc.ID < out[j].desc.ID
	})
	return out
}
