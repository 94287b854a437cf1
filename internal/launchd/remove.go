package launchd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// unload stops the agent if launchd knows about it.
func unload() error {
	if !IsLoaded() {
		return nil
	}
	if _, err := launchctl("unload", PlistPath()); err != nil {
		return fmt.Errorf("❌ failed to unload service: %w", err)
	}
	// launchctl returns before the process has exited
	time.Sleep(time.Second)
	return nil
}

// Remove unloads the agent and deletes its plist. Log files stay so that a
// crashed service can still be diagnosed.
func Remove() error {
	fmt.Println("Removing launchd service...")

	wasLoaded := IsLoaded()
	if err := unload(); err != nil {
		return err
	}
	if wasLoaded {
		fmt.Println("Service unloaded")
	}

	plistPath := PlistPath()
	switch err := os.Remove(plistPath); {
	case err == nil:
		fmt.Printf("Removed plist file: %s\n", plistPath)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("No plist file to remove")
	default:
		return fmt.Errorf("❌ failed to remove plist file: %w", err)
	}

	fmt.Println("✅ Service successfully removed")
	if dir := LogDir(); dirExists(dir) {
		fmt.Printf("Logs were kept in %s\n", dir)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
