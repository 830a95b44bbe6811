package evidence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// CounterFile is the name of the legacy per-seal counter file.
const CounterFile = "objets_essai.json"

// counterMax is the hard cap of the count-based allocator: single letters
// only, A through Z.
const counterMax = 26

// ObjectCounter is the legacy count-based test-object allocator: a plain
// integer persisted in objets_essai.json inside the seal directory. It
// predates the scan-based allocator, cannot represent multi-letter codes,
// and does not notice manually deleted photos. Kept so workspaces written by
// older tool versions stay readable; the primary allocation path is
// Service.CreateTestObject.
type ObjectCounter struct {
	fsmgr  FilesystemManager
	logger Logger
	path   string
	count  int
}

type counterState struct {
	NombreObjets int `json:"nombre_objets"`
}

// LoadObjectCounter reads the counter file of a seal directory, creating it
// with a zero count when absent. A corrupt file is treated as zero, with a
// warning, rather than blocking the seal.
func LoadObjectCounter(fsmgr FilesystemManager, logger Logger, sealPath string) (*ObjectCounter, error) {
	c := &ObjectCounter{
		fsmgr:  fsmgr,
		logger: logger,
		path:   filepath.Join(sealPath, CounterFile),
	}

	data, err := fsmgr.ReadFile(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := c.save(); err != nil {
			return nil, err
		}
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("reading counter file %s: %w", c.path, err)
	}

	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("corrupt object counter file, resetting to zero", "path", c.path)
		return c, nil
	}
	c.count = state.NombreObjets
	return c, nil
}

// Count returns the number of objects recorded by the counter.
func (c *ObjectCounter) Count() int { return c.count }

// Letters returns the codes of the recorded objects: the first Count letters
// of the alphabet.
func (c *ObjectCounter) Letters() []string {
	letters := make([]string, c.count)
	for i := 0; i < c.count; i++ {
		letters[i] = string(rune('A' + i))
	}
	return letters
}

// Add records one more object and returns its letter code. Fails with
// ErrExhaustedRange once all 26 single letters are used.
func (c *ObjectCounter) Add() (string, error) {
	if c.count >= counterMax {
		return "", fmt.Errorf("%w: %s holds %d objects", ErrExhaustedRange, c.path, c.count)
	}

	c.count++
	if err := c.save(); err != nil {
		c.count--
		return "", err
	}
	return string(rune('A' + c.count - 1)), nil
}

func (c *ObjectCounter) save() error {
	data, err := json.MarshalIndent(counterState{NombreObjets: c.count}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding counter state: %w", err)
	}
	if err := c.fsmgr.WriteFile(c.path, data); err != nil {
		return fmt.Errorf("writing counter file %s: %w", c.path, err)
	}
	return nil
}
