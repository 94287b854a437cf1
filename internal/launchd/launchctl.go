package launchd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// launchctl runs launchctl with args and returns its combined output. The
// output is included in the error when the command fails.
func launchctl(args ...string) (string, error) {
	output, err := exec.Command("launchctl", args...).CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("launchctl %s: %w (output: %s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// serviceTarget is the launchctl specifier of the agent in the GUI domain
// of uid.
func serviceTarget(uid int) string {
	return fmt.Sprintf("gui/%d/%s", uid, Label)
}

// plistExists reports whether the agent's plist has been written.
func plistExists() bool {
	_, err := os.Stat(PlistPath())
	return err == nil
}
