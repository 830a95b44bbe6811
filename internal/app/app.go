package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"objectif-go/internal/adb"
	"objectif-go/internal/config"
	"objectif-go/internal/evidence"
	"objectif-go/internal/fs"
	"objectif-go/internal/thumbs"
)

// App is the application layer between the CLI and the evidence service.
// It constructs all dependencies from config, exposes high-level operations
// that accept case and seal names instead of paths, and owns the log file
// lifecycle.
type App struct {
	cfg     *config.Config
	fsmgr   evidence.FilesystemManager
	service *evidence.Service
	capture *adb.Manager
	thumbs  *thumbs.Generator
	log     evidence.Logger
	op      *Operation
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "CreateSeal", "Capture").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	clock := evidence.RealClock{}
	opID := clock.Now().UTC().Format("20060102T150405Z")

	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	fsmgr := fs.NewOSFilesystemManager()

	capture := adb.NewManager(adb.Options{
		Path:         cfg.Adb.Path,
		CaptureDelay: time.Duration(cfg.Adb.CaptureDelaySeconds) * time.Second,
		Timeout:      time.Duration(cfg.Adb.TimeoutSeconds) * time.Second,
	}, adapter)

	svc := evidence.NewService(fsmgr, capture, adapter, clock)
	gen := thumbs.NewGenerator(fsmgr, cfg.Thumbnails.CacheDir, cfg.Thumbnails.MaxWidth, cfg.Thumbnails.Quality)

	return &App{
		cfg:     cfg,
		fsmgr:   fsmgr,
		service: svc,
		capture: capture,
		thumbs:  gen,
		log:     adapter,
		op:      NewOperation(opID, operation, clock.Now()),
		logFile: logFile,
	}, nil
}

// WorkspaceRoot returns the configured workspace root, or an error telling
// the operator to set one.
func (a *App) WorkspaceRoot() (string, error) {
	if a.cfg.WorkspaceRoot == "" {
		return "", fmt.Errorf("no workspace configured: run 'objectif workspace set <dir>'")
	}
	p, err := a.fsmgr.Resolve(a.cfg.WorkspaceRoot)
	if err != nil {
		return "", fmt.Errorf("resolving workspace root: %w", err)
	}
	if !p.IsDir() {
		return "", fmt.Errorf("workspace root is not a directory: %s", p.String())
	}
	return p.String(), nil
}

// CreateCase creates a case folder under the workspace root.
func (a *App) CreateCase(name string) (*evidence.Case, error) {
	root, err := a.WorkspaceRoot()
	if err != nil {
		return nil, err
	}
	return a.service.CreateCase(root, name)
}

// ListCases returns the cases in the workspace root.
func (a *App) ListCases() ([]evidence.Case, error) {
	root, err := a.WorkspaceRoot()
	if err != nil {
		return nil, err
	}
	return a.service.ListCases(root)
}

// CreateSeal creates a sealed-item folder inside the named case.
func (a *App) CreateSeal(caseName, number, name string) (*evidence.SealedItem, error) {
	casePath, _, err := a.resolve(caseName, "")
	if err != nil {
		return nil, err
	}
	return a.service.CreateSeal(casePath, number, name)
}

// ListSeals returns the sealed items of the named case.
func (a *App) ListSeals(caseName string) ([]evidence.SealedItem, error) {
	casePath, _, err := a.resolve(caseName, "")
	if err != nil {
		return nil, err
	}
	return a.service.ListSeals(casePath)
}

// CreateTestObject allocates the next object letter in a seal using the
// scan-based allocator.
func (a *App) CreateTestObject(caseName, sealFolder string) (string, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return "", err
	}
	return a.service.CreateTestObject(sealPath)
}

// CreateTestObjectLegacy allocates an object letter using the legacy
// objets_essai.json counter. Capped at 26 objects; kept for workspaces
// written by older tool versions.
func (a *App) CreateTestObjectLegacy(caseName, sealFolder string) (string, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return "", err
	}
	counter, err := evidence.LoadObjectCounter(a.fsmgr, a.log, sealPath)
	if err != nil {
		return "", err
	}
	return counter.Add()
}

// ListTestObjects returns the object letters of a seal in allocation order.
func (a *App) ListTestObjects(caseName, sealFolder string) ([]string, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return nil, err
	}
	return a.service.ListTestObjects(sealPath)
}

// ListSealPhotos returns the seal-stage photos of a seal in workflow order.
func (a *App) ListSealPhotos(caseName, sealFolder string) ([]evidence.PhotoRecord, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return nil, err
	}
	ix, err := a.service.Index(sealPath)
	if err != nil {
		return nil, err
	}
	return ix.SealPhotos(), nil
}

// ListObjectPhotos returns the photos of one test object, by sequence.
func (a *App) ListObjectPhotos(caseName, sealFolder, letter string) ([]evidence.PhotoRecord, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return nil, err
	}
	ix, err := a.service.Index(sealPath)
	if err != nil {
		return nil, err
	}
	return ix.ObjectPhotos(letter), nil
}

// NextPhotoPath computes where the next photo of the given category token
// would be written.
func (a *App) NextPhotoPath(caseName, sealFolder, token string) (string, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return "", err
	}
	category, err := parseCategory(token)
	if err != nil {
		return "", err
	}
	return a.service.NextPhotoPath(sealPath, category)
}

// Capture connects to the device if needed, takes a photo, and files it
// under the seal with the next free sequence number for the category.
// Returns the destination path.
func (a *App) Capture(ctx context.Context, caseName, sealFolder, token string, progress func(string)) (string, error) {
	_, sealPath, err := a.resolve(caseName, sealFolder)
	if err != nil {
		return "", err
	}
	category, err := parseCategory(token)
	if err != nil {
		return "", err
	}

	if !a.capture.IsConnected() {
		if err := a.capture.Connect(ctx); err != nil {
			return "", fmt.Errorf("connecting to device: %w", err)
		}
	}
	return a.service.CapturePhoto(ctx, sealPath, category, progress)
}

// DeviceInfo connects to the device if needed and returns its details.
func (a *App) DeviceInfo(ctx context.Context) (*evidence.DeviceInfo, error) {
	if !a.capture.IsConnected() {
		if err := a.capture.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connecting to device: %w", err)
		}
	}
	return a.capture.GetDeviceInfo(ctx)
}

// PhotoInfo inspects a photo file: dimensions, size, capture timestamp.
func (a *App) PhotoInfo(rawPath string) (*evidence.PhotoInfo, error) {
	p, err := a.fsmgr.Resolve(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return evidence.InspectPhoto(a.fsmgr, p.String())
}

// Thumbnail returns a cached thumbnail path for a photo, generating it if
// needed.
func (a *App) Thumbnail(rawPath string) (string, error) {
	p, err := a.fsmgr.Resolve(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return a.thumbs.Thumbnail(p.String())
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// resolve maps case and seal names onto workspace paths through an explicit
// session context. sealFolder may be empty when only the case is needed.
func (a *App) resolve(caseName, sealFolder string) (casePath, sealPath string, err error) {
	root, err := a.WorkspaceRoot()
	if err != nil {
		return "", "", err
	}
	session := evidence.SessionContext{CurrentCase: caseName, CurrentSeal: sealFolder}
	return a.service.ResolveContext(root, session)
}

// parseCategory maps a CLI category token to a Category, rejecting tokens
// the classifier does not recognize.
func parseCategory(token string) (evidence.Category, error) {
	c := evidence.Classify(token)
	if c.Kind == evidence.KindUnrecognized {
		return evidence.Category{}, fmt.Errorf("unknown category %q: use Ferme, Contenu, Reconditionne or an object letter", token)
	}
	return c, nil
}
