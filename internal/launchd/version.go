package launchd

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds running a binary with --version.
const versionTimeout = 5 * time.Second

// devVersion is reported by builds without release metadata.
const devVersion = "dev"

// versionsMatch reports whether two binaries report the same version.
// Binaries whose version is unknown or a development build always match.
func versionsMatch(path1, path2 string) bool {
	v1, v2 := getBinaryVersion(path1), getBinaryVersion(path2)
	for _, v := range []string{v1, v2} {
		if v == "" || v == devVersion {
			return true
		}
	}
	return v1 == v2
}

// getBinaryVersion runs binaryPath --version and returns the reported
// version, or "" if the binary cannot be run or is not this program.
func getBinaryVersion(binaryPath string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, binaryPath, "--version").Output()
	if err != nil {
		return ""
	}
	return parseVersion(string(output))
}

// parseVersion extracts the version from output like
// "doc-html-mcp version 0.1.0".
func parseVersion(output string) string {
	first, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(first)
	if len(fields) >= 3 && fields[0] == BinaryName && fields[1] == "version" {
		return fields[2]
	}
	return ""
}
