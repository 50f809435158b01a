// cmd/vajra/menu.go
package main

import (
	"context"
	"strings"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/core/usecases"
	"vajra/internal/platform/config"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/ui"
)

// askMissing completa target y selección con el menú interactivo cuando no
// llegaron por flags, entorno ni archivo.
func askMissing(ctx context.Context, cfg *config.Config, op ports.Operator, presenter ui.Presenter, descs []domain.ModuleDescriptor) error {
	if cfg.Core.Target == "" {
		answer, err := op.Prompt(ctx, "Target (host, IP, CIDR or @file):", 0)
		if err != nil {
			return errors.Wrap(err, "reading target")
		}
		cfg.Core.Target = strings.TrimSpace(answer)
		if cfg.Core.Target == "" {
			return domain.ErrEmptyTarget
		}
	}

	if cfg.Core.Modules != "" {
		return nil
	}

	presenter.Menu("Modules", moduleMenu(descs))
	answer, err := op.Prompt(ctx, "Select modules (e.g. 1,4,7 or 0 for all):", 0)
	if err != nil {
		return errors.Wrap(err, "reading module selection")
	}
	cfg.Core.Modules = strings.TrimSpace(answer)
	if cfg.Core.Modules == "" {
		return errors.Wrap(errors.ErrInvalidInput, "no modules selected")
	}

	if cfg.Core.Report || usecases.IsRunAll(cfg.Core.Modules) {
		return nil
	}
	// sin respuesta no hay informe
	answer, err = op.Prompt(ctx, "Generate HTML report? [y/N]", cfg.Runtime.PromptTimeout)
	if err == nil {
		cfg.Core.Report = isYes(answer)
	}
	return nil
}

func moduleMenu(descs []domain.ModuleDescriptor) []ui.MenuEntry {
	entries := make([]ui.MenuEntry, 0, len(descs)+1)
	entries = append(entries, ui.MenuEntry{Key: "0", Label: "all", Description: "run every module, unattended"})
	for _, d := range descs {
		entries = append(entries, ui.MenuEntry{Key: string(d.ID), Label: d.Name, Description: d.Description})
	}
	return entries
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "s", "si":
		return true
	}
	return false
}
