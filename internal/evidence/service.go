package evidence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Case is a top-level workspace folder representing one investigation.
type Case struct {
	Name string
	Path string
}

// SealedItem is a folder representing one physical sealed evidence
// container. Its photos are derived by scanning, never stored.
type SealedItem struct {
	Number       string
	Name         string
	Path         string
	CreationDate time.Time
}

// FolderName returns the on-disk folder name, "{number}_{name}".
func (s *SealedItem) FolderName() string {
	return s.Number + "_" + s.Name
}

// Service is the hierarchy manager: it creates and enumerates cases, seals
// and test objects on top of the index and allocators. The filesystem is the
// authority for everything except letters reserved in the current session
// for objects that have no photo yet; those live only in memory and are lost
// on restart.
type Service struct {
	fsmgr   FilesystemManager
	capture CaptureService
	logger  Logger
	clock   Clock

	// reserved maps a seal path to the object letters created this session
	// that no photo file materializes yet.
	reserved map[string]map[string]struct{}
}

// NewService creates a Service with the provided dependencies. capture may
// be nil when no device operations are needed (pure indexing).
func NewService(fsmgr FilesystemManager, capture CaptureService, logger Logger, clock Clock) *Service {
	return &Service{
		fsmgr:    fsmgr,
		capture:  capture,
		logger:   logger,
		clock:    clock,
		reserved: make(map[string]map[string]struct{}),
	}
}

// CreateCase creates a new case folder directly under the workspace root.
func (s *Service) CreateCase(workspaceRoot, name string) (*Case, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid case name (try %q): %w", SuggestName(name), err)
	}
	if err := s.requireDir(workspaceRoot); err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}

	path := filepath.Join(workspaceRoot, name)
	if err := s.fsmgr.MkDir(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("case %s: %w", path, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("creating case %s: %w", path, err)
	}

	s.logger.Info("case created", "path", path)
	return &Case{Name: name, Path: path}, nil
}

// ListCases returns the cases in the workspace root, sorted
// case-insensitively by name. The listing is recomputed on every call.
func (s *Service) ListCases(workspaceRoot string) ([]Case, error) {
	if err := s.requireDir(workspaceRoot); err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}

	names, err := s.fsmgr.ListDirs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("listing cases in %s: %w", workspaceRoot, err)
	}

	cases := make([]Case, len(names))
	for i, n := range names {
		cases[i] = Case{Name: n, Path: filepath.Join(workspaceRoot, n)}
	}
	return cases, nil
}

// CreateSeal creates a new sealed-item folder "{number}_{name}" inside a
// case. The folder starts empty; photos materialize it over time.
func (s *Service) CreateSeal(casePath, number, name string) (*SealedItem, error) {
	if number == "" {
		return nil, fmt.Errorf("seal number is empty")
	}
	folder := number + "_" + name
	if err := ValidateName(folder); err != nil {
		return nil, fmt.Errorf("invalid seal name (try %q): %w", SuggestName(folder), err)
	}
	if err := s.requireDir(casePath); err != nil {
		return nil, fmt.Errorf("case: %w", err)
	}

	path := filepath.Join(casePath, folder)
	if err := s.fsmgr.MkDir(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("seal %s: %w", path, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("creating seal %s: %w", path, err)
	}

	seal := &SealedItem{Number: number, Name: name, Path: path, CreationDate: s.clock.Now()}
	if fi, err := s.fsmgr.Stat(path); err == nil {
		seal.CreationDate = fi.ModTime()
	}

	s.logger.Info("seal created", "path", path)
	return seal, nil
}

// ListSeals returns the sealed items of a case, sorted case-insensitively by
// folder name. Recomputed on every call, no caching.
func (s *Service) ListSeals(casePath string) ([]SealedItem, error) {
	if err := s.requireDir(casePath); err != nil {
		return nil, fmt.Errorf("case: %w", err)
	}

	names, err := s.fsmgr.ListDirs(casePath)
	if err != nil {
		return nil, fmt.Errorf("listing seals in %s: %w", casePath, err)
	}

	seals := make([]SealedItem, 0, len(names))
	for _, n := range names {
		number, name := parseSealFolder(n)
		seal := SealedItem{Number: number, Name: name, Path: filepath.Join(casePath, n)}
		if fi, err := s.fsmgr.Stat(seal.Path); err == nil {
			seal.CreationDate = fi.ModTime()
		}
		seals = append(seals, seal)
	}
	return seals, nil
}

// FindSeal returns the seal with the given folder name, or ErrNotFound.
func (s *Service) FindSeal(casePath, folderName string) (*SealedItem, error) {
	seals, err := s.ListSeals(casePath)
	if err != nil {
		return nil, err
	}
	for i := range seals {
		if seals[i].FolderName() == folderName {
			return &seals[i], nil
		}
	}
	return nil, fmt.Errorf("seal %s in %s: %w", folderName, casePath, ErrNotFound)
}

// Index scans a sealed-item directory and returns its evidence index.
func (s *Service) Index(sealPath string) (*EvidenceIndex, error) {
	if err := s.requireDir(sealPath); err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	return BuildIndex(s.fsmgr, sealPath)
}

// CreateTestObject allocates the next free object letter for a seal, over
// the union of letters discovered from photos and letters reserved earlier
// this session. The letter is reserved in memory only; a photo file
// materializes the object later. An object reserved here is invisible after
// restart until a photo names it.
func (s *Service) CreateTestObject(sealPath string) (string, error) {
	ix, err := s.Index(sealPath)
	if err != nil {
		return "", err
	}

	letters := append([]string(nil), ix.ObjectLetters...)
	for l := range s.reserved[sealPath] {
		letters = append(letters, l)
	}

	next := NextLetter(letters)
	if !IsLetterCode(next) {
		return "", fmt.Errorf("allocated object code %q is not an uppercase letter code", next)
	}
	for _, l := range letters {
		if l == next {
			return "", fmt.Errorf("object %s in %s: %w", next, sealPath, ErrAlreadyExists)
		}
	}

	if s.reserved[sealPath] == nil {
		s.reserved[sealPath] = make(map[string]struct{})
	}
	s.reserved[sealPath][next] = struct{}{}

	s.logger.Info("test object created", "seal", sealPath, "letter", next)
	return next, nil
}

// ListTestObjects returns the object letters of a seal in allocation order:
// letters backed by photos, letters reserved this session, and the gap-fill
// of missing single letters up to the maximum discovered one.
func (s *Service) ListTestObjects(sealPath string) ([]string, error) {
	ix, err := s.Index(sealPath)
	if err != nil {
		return nil, err
	}

	letters := append([]string(nil), ix.ObjectLetters...)
	for l := range s.reserved[sealPath] {
		letters = append(letters, l)
	}
	return CompleteLetters(letters), nil
}

// ReservedLetters returns the letters reserved this session for a seal, in
// allocation order.
func (s *Service) ReservedLetters(sealPath string) []string {
	out := make([]string, 0, len(s.reserved[sealPath]))
	for l := range s.reserved[sealPath] {
		out = append(out, l)
	}
	SortLetters(out)
	return out
}

// NextPhotoPath computes the destination path of the next photo for a
// category, from a fresh scan of the seal directory. Two sequential calls
// observe any file written between them; concurrent writers are not
// supported (scan-then-write has no lock).
func (s *Service) NextPhotoPath(sealPath string, category Category) (string, error) {
	ix, err := s.Index(sealPath)
	if err != nil {
		return "", err
	}

	number, name := parseSealFolder(filepath.Base(sealPath))
	seq := ix.NextSequence(category)
	filename := EncodeFilename(number, name, category, seq)

	// Seal names containing underscores cannot satisfy the strict four-token
	// form; they are covered by the tolerant decode used at scan time.
	if !strings.Contains(number, "_") && !strings.Contains(name, "_") {
		if _, err := DecodeFilename(filename); err != nil {
			return "", fmt.Errorf("generated filename failed validation: %w", err)
		}
	}

	return filepath.Join(sealPath, filename), nil
}

// CapturePhoto asks the device to take a photo and save it at the next
// computed path for the category. Returns the destination path.
func (s *Service) CapturePhoto(ctx context.Context, sealPath string, category Category, progress func(string)) (string, error) {
	if s.capture == nil {
		return "", fmt.Errorf("no capture service configured")
	}
	if !s.capture.IsConnected() {
		return "", fmt.Errorf("no device connected")
	}

	destPath, err := s.NextPhotoPath(sealPath, category)
	if err != nil {
		return "", err
	}

	if err := s.capture.TakePhoto(ctx, destPath, progress); err != nil {
		return "", fmt.Errorf("taking photo to %s: %w", destPath, err)
	}

	s.logger.Info("photo captured", "path", destPath)
	return destPath, nil
}

// requireDir fails with ErrNotFound when path does not exist, or with a
// plain error when it is not a directory.
func (s *Service) requireDir(path string) error {
	fi, err := s.fsmgr.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// parseSealFolder splits a seal folder name into number and name. The number
// is everything before the first underscore; the name keeps any further
// underscores.
func parseSealFolder(folder string) (number, name string) {
	number, name, _ = strings.Cut(folder, "_")
	return number, name
}
