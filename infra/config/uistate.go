package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// UIState is remembered between runs of the TUI.
type UIState struct {
	SelectedTab string `json:"selected_tab,omitempty"`
}

// LoadUIState reads the state file. A missing file is the zero state.
func LoadUIState(path string) (UIState, error) {
	var st UIState
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("reading ui state: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return st, nil
}

// SaveUIState writes the state file.
func SaveUIState(path string, st UIState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating ui state dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
