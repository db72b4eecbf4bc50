// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package bridge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileDraft stores drafts as JSON files under Dir, one per theme, named
// "<themeID>.theme-draft-v1.json".
type FileDraft struct {
	Dir string
}

func (f FileDraft) path(themeID string) string {
	return filepath.Join(f.Dir, themeID+".theme-draft-v1.json")
}

func (f FileDraft) LoadDraft(_ context.Context, themeID string) ([]byte, error) {
	data, err := os.ReadFile(f.path(themeID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return data, nil
}

// SaveDraft writes through a temporary file so a crash never leaves a
// truncated draft behind.
func (f FileDraft) SaveDraft(_ context.Context, themeID string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.Dir, ".draft-*")
	if err != nil {
		return fmt.Errorf("create draft: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close draft: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(themeID)); err != nil {
		return fmt.Errorf("rename draft: %w", err)
	}
	return nil
}

func (f FileDraft) ClearDraft(_ context.Context, themeID string) error {
	err := os.Remove(f.path(themeID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove draft: %w", err)
	}
	return nil
}
