// ABOUTME: Preference CLI commands
// ABOUTME: Shows or resets the saved grid preferences blob
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/harperreed/dealgrid/prefs"
)

// PrefsShowCommand prints the saved preferences as indented JSON.
func PrefsShowCommand(ctx context.Context, m *prefs.Manager, w io.Writer) error {
	data, err := m.Raw(ctx)
	if errors.Is(err, prefs.ErrNotFound) {
		_, _ = fmt.Fprintln(w, "No saved preferences (defaults in use)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// Malformed blobs are shown verbatim; Load falls back to defaults for them.
		_, _ = fmt.Fprintf(w, "%s\n(malformed, defaults in use)\n", data)
		return nil
	}
	_, _ = fmt.Fprintln(w, out.String())
	return nil
}

// PrefsResetCommand deletes the saved preferences.
func PrefsResetCommand(ctx context.Context, m *prefs.Manager, w io.Writer) error {
	if err := m.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "✓ Preferences reset to defaults")
	return nil
}
