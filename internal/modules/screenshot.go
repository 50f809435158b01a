// internal/modules/screenshot.go
package modules

import (
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
)

var screenshotDescriptor = domain.ModuleDescriptor{
	ID:          IDScreenshot,
	Name:        "screenshot",
	Description: "Web screenshots of live hosts (EyeWitness)",
	Order:       7,
	Binary:      "eyewitness",
	Requires: []domain.InputSpec{{
		Kind:           "live-hosts",
		Sources:        []string{domain.ArtifactAlive},
		TargetFallback: true,
	}},
	Timeout: 30 * time.Minute,
}

func init() {
	register(newScreenshot, screenshotDescriptor)
}

type screenshotModule struct{ base }

func newScreenshot(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &screenshotModule{base: newBase(screenshotDescriptor, cfg, logger)}, nil
}

func (m *screenshotModule) Build(inv ports.Invocation) (ports.Command, error) {
	args := []string{"--web", "--timeout", "30", "--threads", "500", "--prepend-https"}
	in := input(inv)
	if in.List {
		args = append(args, "-f", in.Value)
	} else {
		args = append(args, "--single", in.Value)
	}
	args = append(args, "-d", inv.ScreenshotsDir, "--no-prompt")
	return m.command(args...), nil
}
