//go:build !unix

// internal/supervisor/proc_other.go
package supervisor

import (
	"os"
	"os/exec"

	"vajra/internal/platform/errors"
)

func setProcAttr(*exec.Cmd) {}

func suspend(*os.Process) error {
	return errors.Wrap(errors.ErrUnsupported, "process suspend")
}

func resume(*os.Process) error {
	return errors.Wrap(errors.ErrUnsupported, "process resume")
}

// interrupt no tiene equivalente a SIGTERM fuera de unix: se mata directamente.
func interrupt(p *os.Process, _ bool) error { return p.Kill() }

func kill(p *os.Process) error { return p.Kill() }
