package evidence

import (
	"fmt"
	"path/filepath"
)

// SessionContext is the operator's current selection: active case, seal and
// object. It is passed explicitly through the hierarchy manager instead of
// living on presentation state, and is never persisted.
type SessionContext struct {
	CurrentCase   string // case folder name, empty when none selected
	CurrentSeal   string // seal folder name ("{number}_{name}")
	CurrentObject string // object letter code
}

// ResolveContext maps the selection onto workspace paths, verifying each
// selected level exists on disk. The seal path is empty when no seal is
// selected.
func (s *Service) ResolveContext(workspaceRoot string, ctx SessionContext) (casePath, sealPath string, err error) {
	if ctx.CurrentCase == "" {
		return "", "", fmt.Errorf("no case selected")
	}

	casePath = filepath.Join(workspaceRoot, ctx.CurrentCase)
	if err := s.requireDir(casePath); err != nil {
		return "", "", fmt.Errorf("case: %w", err)
	}

	if ctx.CurrentSeal == "" {
		return casePath, "", nil
	}
	sealPath = filepath.Join(casePath, ctx.CurrentSeal)
	if err := s.requireDir(sealPath); err != nil {
		return "", "", fmt.Errorf("seal: %w", err)
	}

	if ctx.CurrentObject != "" && !IsLetterCode(ctx.CurrentObject) {
		return "", "", fmt.Errorf("invalid object code %q", ctx.CurrentObject)
	}
	return casePath, sealPath, nil
}
