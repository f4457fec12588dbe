package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ExtensionPrefix prefixes the executables extending fin with a subcommand.
const ExtensionPrefix = "fin-"

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the global flags as environment variables, with an
// absolute store location.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvStore+"="+absLocation(StoreLocation()))
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(Verbose()))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// absLocation makes a directory or sqlite location absolute, so that it
// survives a change of working directory.
func absLocation(location string) string {
	if location == "memory:" {
		return location
	}
	prefix, path := "", location
	for _, scheme := range []string{"sqlite:", "dir:"} {
		if rest, ok := strings.CutPrefix(location, scheme); ok {
			prefix, path = scheme, rest
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return location
	}
	return prefix + abs
}
