package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// PathExists checks for existense of specified path
func PathExists(d string) bool {
	_, err := os.Stat(d)
	if err != nil && os.IsNotExist(err) {
		return false
	}
	return true
}

// execCommand is replaced in tests.
var execCommand = exec.Command

// runCommand runs args and returns its trimmed combined output.
func runCommand(args ...string) (string, error) {
	cmd := execCommand(args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		return out, errors.Errorf("%s: %s: %s", strings.Join(args, " "), err, out)
	}
	return out, nil
}
