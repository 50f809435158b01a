// internal/supervisor/supervisor_test.go
package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/testutil"
)

func newTestSupervisor() *Supervisor {
	return New(Options{WaitDelay: 500 * time.Millisecond})
}

func waitExit(t *testing.T, p ports.Process, timeout time.Duration) int {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(timeout):
		t.Fatalf("process did not exit within %s", timeout)
	}
	exited, code := p.Poll()
	require.True(t, exited)
	return code
}

func TestStart_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	ok := testutil.WriteScript(t, dir, "ok.sh", "exit 0")
	bad := testutil.WriteScript(t, dir, "bad.sh", "echo 'boom' >&2; exit 3")

	s := newTestSupervisor()

	p, err := s.Start(context.Background(), ports.Command{Module: "ok", Path: ok})
	require.NoError(t, err)
	require.Equal(t, 0, waitExit(t, p, 5*time.Second))

	p, err = s.Start(context.Background(), ports.Command{Module: "bad", Path: bad})
	require.NoError(t, err)
	require.Equal(t, 3, waitExit(t, p, 5*time.Second))
	require.Contains(t, p.Detail(), "boom", "stderr tail is kept for diagnostics")
}

func TestStart_MissingBinary(t *testing.T) {
	s := newTestSupervisor()

	_, err := s.Start(context.Background(), ports.Command{Module: "amass", Path: "vajra-no-such-binary"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLaunch))
	require.True(t, errors.IsNotFound(err))

	_, err = s.Start(context.Background(), ports.Command{Module: "amass", Path: filepath.Join(t.TempDir(), "absent")})
	require.True(t, errors.Is(err, ErrLaunch))
}

func TestStart_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSupervisor().Start(ctx, ports.Command{Module: "whois", Path: "true"})
	require.True(t, errors.IsCanceled(err))
}

func TestStart_StdoutRedirect(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "whois.sh", `echo "Domain Name: $1"`)
	out := filepath.Join(dir, "whois.txt")

	p, err := newTestSupervisor().Start(context.Background(), ports.Command{
		Module:     "whois",
		Path:       script,
		Args:       []string{"example.com"},
		StdoutPath: out,
	})
	require.NoError(t, err)
	require.Equal(t, 0, waitExit(t, p, 5*time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Domain Name: example.com", strings.TrimSpace(string(data)))
}

func TestPauseResume_KeepsExitCode(t *testing.T) {
	dir := t.TempDir()
	body := `i=0
while [ $i -lt 10 ]; do i=$((i+1)); sleep 0.05; done
exit 7`
	script := testutil.WriteScript(t, dir, "slow.sh", body)
	s := newTestSupervisor()

	// reference run without control actions
	ref, err := s.Start(context.Background(), ports.Command{Module: "slow", Path: script})
	require.NoError(t, err)
	refCode := waitExit(t, ref, 10*time.Second)

	p, err := s.Start(context.Background(), ports.Command{Module: "slow", Path: script})
	require.NoError(t, err)
	require.NoError(t, p.Pause())
	require.NoError(t, p.Pause(), "pause is idempotent")

	time.Sleep(800 * time.Millisecond)
	exited, _ := p.Poll()
	require.False(t, exited, "suspended child must not make progress")

	require.NoError(t, p.Resume())
	require.Equal(t, refCode, waitExit(t, p, 10*time.Second))
	require.Equal(t, 7, refCode)
}

func TestTerminate_BoundedWhenTermIgnored(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "stubborn.sh", "trap '' TERM\nsleep 30")

	p, err := newTestSupervisor().Start(context.Background(), ports.Command{Module: "stubborn", Path: script})
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Terminate(200*time.Millisecond))
	require.Less(t, time.Since(start), 3*time.Second)

	exited, _ := p.Poll()
	require.True(t, exited)

	start = time.Now()
	require.NoError(t, p.Terminate(5*time.Second), "second terminate is a no-op")
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestTerminate_PausedChild(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "long.sh", "sleep 30")

	p, err := newTestSupervisor().Start(context.Background(), ports.Command{Module: "long", Path: script})
	require.NoError(t, err)
	require.NoError(t, p.Pause())

	require.NoError(t, p.Terminate(2*time.Second))
	code := waitExit(t, p, 3*time.Second)
	require.NotEqual(t, 0, code)
}

func TestNative_CooperativePause(t *testing.T) {
	var steps atomic.Int32
	release := make(chan struct{})

	cmd := ports.Command{
		Module: "whois",
		Native: func(ctx context.Context, checkpoint ports.Checkpoint) error {
			for i := 0; i < 3; i++ {
				if err := checkpoint(); err != nil {
					return err
				}
				steps.Add(1)
				if i == 0 {
					<-release
				}
			}
			return nil
		},
	}

	p, err := newTestSupervisor().Start(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, 0, p.PID())

	testutil.Eventually(t, time.Second, func() bool { return steps.Load() == 1 }, "first step")
	require.NoError(t, p.Pause())
	close(release)

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), steps.Load(), "paused at checkpoint")

	require.NoError(t, p.Resume())
	require.Equal(t, 0, waitExit(t, p, time.Second))
	require.Equal(t, int32(3), steps.Load())
}

func TestNative_TerminateWhilePaused(t *testing.T) {
	cmd := ports.Command{
		Module: "whois",
		Native: func(ctx context.Context, checkpoint ports.Checkpoint) error {
			for {
				if err := checkpoint(); err != nil {
					return err
				}
				time.Sleep(5 * time.Millisecond)
			}
		},
	}

	p, err := newTestSupervisor().Start(context.Background(), cmd)
	require.NoError(t, err)
	require.NoError(t, p.Pause())

	require.NoError(t, p.Terminate(time.Second))
	require.Equal(t, -1, waitExit(t, p, time.Second))
	require.Contains(t, p.Detail(), "terminated")
}

func TestNative_Failure(t *testing.T) {
	cmd := ports.Command{
		Module: "whois",
		Native: func(context.Context, ports.Checkpoint) error { return errors.New("no whois server") },
	}
	p, err := newTestSupervisor().Start(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, 1, waitExit(t, p, time.Second))
	require.Equal(t, "no whois server", p.Detail())
}

func TestTailBuffer(t *testing.T) {
	tb := newTailBuffer(5)
	_, _ = tb.Write([]byte("abc"))
	_, _ = tb.Write([]byte("defg"))
	require.Equal(t, "cdefg", tb.String())
}
