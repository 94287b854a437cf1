package launchd

import (
	"fmt"
	"os"
)

// Restart kills and relaunches the running agent from its existing plist,
// e.g. after documents were imported into the store or the rendering
// configuration changed. The plist itself is not rewritten; use Create for
// changed flags.
func Restart() error {
	if !plistExists() {
		return fmt.Errorf("❌ no launchd service at %s; run '%s launchd create' first", PlistPath(), BinaryName)
	}

	fmt.Println("♻️  Restarting launchd service...")
	if _, err := launchctl("kickstart", "-k", serviceTarget(os.Getuid())); err != nil {
		return fmt.Errorf("❌ failed to restart service: %w", err)
	}

	fmt.Println("✅ Service restarted")
	return nil
}
