//go:build unix

// internal/supervisor/proc_unix.go
package supervisor

import (
	"os"
	"os/exec"
	"syscall"
)

func setProcAttr(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup envía sig a todo el grupo del hijo; si el grupo ya no existe
// cae al propio proceso.
func signalGroup(p *os.Process, sig syscall.Signal) error {
	if err := syscall.Kill(-p.Pid, sig); err != nil {
		if err == syscall.ESRCH {
			return p.Signal(sig)
		}
		return err
	}
	return nil
}

func suspend(p *os.Process) error { return signalGroup(p, syscall.SIGSTOP) }

func resume(p *os.Process) error { return signalGroup(p, syscall.SIGCONT) }

// interrupt envía SIGTERM. Un proceso parado no atiende la señal hasta
// recibir SIGCONT.
func interrupt(p *os.Process, paused bool) error {
	if err := signalGroup(p, syscall.SIGTERM); err != nil {
		return err
	}
	if paused {
		return signalGroup(p, syscall.SIGCONT)
	}
	return nil
}

func kill(p *os.Process) error { return signalGroup(p, syscall.SIGKILL) }
