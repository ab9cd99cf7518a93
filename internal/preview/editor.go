package preview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditorCommand returns the editor to launch: $VISUAL, then $EDITOR, then
// vi. The value may carry arguments ("code --wait").
func EditorCommand() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// Edit opens path in the user's editor attached to the current terminal and
// waits for it to exit.
func Edit(ctx context.Context, path string) error {
	args := append(EditorCommand(), path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", args[0], err)
	}
	return nil
}
