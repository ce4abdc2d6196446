// Package launch hands steam:// URIs and folders to the operating system.
package launch

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrEmptyTarget is returned when there is nothing to launch.
var ErrEmptyTarget = errors.New("nothing to launch")

// Launcher opens URIs with a configured command or the system default handler.
type Launcher struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments placed before the target
	goos    string
	logger  *slog.Logger

	// start runs a command without waiting for it.
	start func(name string, args ...string) error
}

// NewLauncher creates a Launcher. An empty command uses open, xdg-open or
// cmd /c start depending on the platform.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		logger:  logger,
		start:   startCommand,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Launch opens target, typically a steam:// URI.
func (l *Launcher) Launch(target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	if l.command != "" {
		return l.launchConfigured(target)
	}
	return l.launchDefault(target)
}

// OpenFolder shows a directory in the platform file manager. The configured
// command is not used since it is usually Steam itself.
func (l *Launcher) OpenFolder(path string) error {
	if path == "" {
		return ErrEmptyTarget
	}
	if l.goos == "windows" {
		l.logger.Info("opening folder", "path", path)
		return l.start("explorer", path)
	}
	return l.launchDefault(path)
}

// launchConfigured runs the configured command with the target as last argument
func (l *Launcher) launchConfigured(target string) error {
	args := append([]string{}, l.args...)

	// On macOS, try to launch GUI apps with 'open -a' if command not in PATH
	if l.goos == "darwin" {
		if _, err := exec.LookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, target)
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command, "args", cmdArgs)
			return l.start("open", cmdArgs...)
		}
	}

	args = append(args, target)
	l.logger.Info("launching with configured command", "command", l.command, "args", args)
	return l.start(l.command, args...)
}

// launchDefault opens the target using the system default handler
func (l *Launcher) launchDefault(target string) error {
	l.logger.Info("launching with system default", "os", l.goos, "target", target)

	switch l.goos {
	case "darwin":
		return l.start("open", target)
	case "windows":
		return l.start("cmd", "/c", "start", "", target)
	default:
		// Linux and other Unix-like systems
		return l.start("xdg-open", target)
	}
}
