package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
)

// PidFile returns the PID file of a background worker.
func PidFile(name string) string {
	return filepath.Join(RuntimeDir(), name+".pid")
}

// LogFile returns the log file of a background worker.
func LogFile(name string) string {
	return filepath.Join(RuntimeDir(), "logs", name+".log")
}

func ensureDirs() error {
	return os.MkdirAll(filepath.Join(RuntimeDir(), "logs"), 0o755)
}

// Running reports whether the worker recorded in its PID file is alive.
// A stale PID file is removed.
func Running(name string) (bool, int) {
	pidFile := PidFile(name)
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return false, 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, 0
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		os.Remove(pidFile)
		return false, 0
	}
	return true, pid
}

// Start runs `<executable> serve <name>` detached, with output going to
// the worker's log file. args are passed before the subcommand.
func Start(name string, args ...string) (int, error) {
	if running, pid := Running(name); running {
		return 0, wisherror.Newf("already running (PID %d)", pid).
			WithCode(wisherror.CodeInvalidInput).
			WithDetail("worker", name)
	}
	if err := ensureDirs(); err != nil {
		return 0, wisherror.Wrap(err, "cannot create runtime directory").
			WithCode(wisherror.CodeConfigError)
	}

	executable, err := os.Executable()
	if err != nil {
		return 0, wisherror.Wrap(err, "executable not found").
			WithCode(wisherror.CodeInternal)
	}

	logFd, err := os.OpenFile(LogFile(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, wisherror.Wrap(err, "cannot open log file").
			WithCode(wisherror.CodeConfigError).
			WithDetail("path", LogFile(name))
	}

	cmd := exec.Command(executable, append(args, "serve", name)...)
	cmd.Stdout = logFd
	cmd.Stderr = logFd
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		logFd.Close()
		return 0, wisherror.Wrap(err, "start failed").
			WithCode(wisherror.CodeServiceInitialization).
			WithDetail("worker", name)
	}

	pid := cmd.Process.Pid
	if err := os.WriteFile(PidFile(name), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		cmd.Process.Kill()
		logFd.Close()
		return 0, wisherror.Wrap(err, "cannot write PID file").
			WithCode(wisherror.CodeConfigError)
	}

	go func() {
		cmd.Wait()
		logFd.Close()
	}()
	return pid, nil
}

// Stop sends SIGTERM to a background worker and removes its PID file.
func Stop(name string) error {
	running, pid := Running(name)
	if !running {
		return wisherror.New("not running").
			WithCode(wisherror.CodeNotFound).
			WithDetail("worker", name)
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return wisherror.Wrap(err, "process not found").WithCode(wisherror.CodeNotFound)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return wisherror.Wrap(err, "stop failed").WithCode(wisherror.CodeInternal)
	}
	os.Remove(PidFile(name))
	return nil
}

// Tail returns the last n lines of a worker's log file.
func Tail(name string, n int) ([]string, error) {
	data, err := os.ReadFile(LogFile(name))
	if err != nil {
		return nil, wisherror.Wrap(err, "log file not found").
			WithCode(wisherror.CodeNotFound).
			WithDetail("path", LogFile(name))
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if start := len(lines) - n; start > 0 {
		lines = lines[start:]
	}
	return lines, nil
}
