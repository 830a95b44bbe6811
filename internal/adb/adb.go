// Package adb wraps the external Android debug bridge binary as the device
// capture service. All device interaction is process invocation: trigger the
// shutter with a key event, wait for the camera app to write the file, then
// pull it off the device to the destination path the evidence core computed.
package adb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"objectif-go/internal/evidence"
)

// dcimDirs are the device directories searched for freshly captured photos,
// in order. Different camera apps write to different ones.
var dcimDirs = []string{
	"/sdcard/DCIM/Camera",
	"/storage/emulated/0/DCIM/Camera",
	"/sdcard/DCIM/OpenCamera",
}

// Runner executes an external command and returns its combined stdout.
// Injected so command plumbing is testable without a device.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Options configures the Manager.
type Options struct {
	// Path is an explicit adb binary. Empty means search CandidatePaths.
	Path string

	// CaptureDelay is how long to wait after triggering the shutter before
	// looking for the new photo.
	CaptureDelay time.Duration

	// Timeout bounds each individual adb invocation.
	Timeout time.Duration
}

// Manager talks to Android devices through the adb binary. It implements
// evidence.CaptureService.
type Manager struct {
	logger evidence.Logger
	run    Runner
	opts   Options

	adbPath string
	serial  string
}

// NewManager creates a Manager. The adb binary is located lazily on the
// first Connect.
func NewManager(opts Options, logger evidence.Logger) *Manager {
	if opts.CaptureDelay <= 0 {
		opts.CaptureDelay = 3 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Manager{logger: logger, run: execRunner, opts: opts}
}

// CandidatePaths returns the adb binary locations to try, most specific
// first, ending with a bare "adb" resolved through PATH.
func CandidatePaths() []string {
	var paths []string
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			paths = append(paths, filepath.Join(local, "Android", "Sdk", "platform-tools", "adb.exe"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "platform-tools", "adb.exe"))
		}
		paths = append(paths, `C:\platform-tools\adb.exe`, "adb.exe")
		return paths
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "platform-tools", "adb"))
	}
	paths = append(paths, "/usr/bin/adb", "/usr/local/bin/adb", "adb")
	return paths
}

// Connect locates the adb binary, starts the adb server, and picks the first
// authorized device.
func (m *Manager) Connect(ctx context.Context) error {
	if m.adbPath == "" {
		path, err := m.locateAdb(ctx)
		if err != nil {
			return err
		}
		m.adbPath = path
	}

	if _, err := m.adb(ctx, "start-server"); err != nil {
		return fmt.Errorf("starting adb server: %w", err)
	}

	out, err := m.adb(ctx, "devices")
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	serials := ParseDevices(out)
	if len(serials) == 0 {
		m.serial = ""
		return fmt.Errorf("no authorized device connected")
	}
	if len(serials) > 1 {
		m.logger.Warn("multiple devices connected, using first", "serial", serials[0])
	}

	m.serial = serials[0]
	m.logger.Info("device connected", "serial", m.serial)
	return nil
}

// IsConnected reports whether Connect succeeded and a device was selected.
func (m *Manager) IsConnected() bool {
	return m.serial != ""
}

// GetDeviceInfo queries the connected device's model and Android version.
func (m *Manager) GetDeviceInfo(ctx context.Context) (*evidence.DeviceInfo, error) {
	if !m.IsConnected() {
		return nil, fmt.Errorf("no device connected")
	}

	model, err := m.shell(ctx, "getprop", "ro.product.model")
	if err != nil {
		return nil, fmt.Errorf("reading device model: %w", err)
	}
	version, err := m.shell(ctx, "getprop", "ro.build.version.release")
	if err != nil {
		return nil, fmt.Errorf("reading android version: %w", err)
	}

	return &evidence.DeviceInfo{
		Serial:         m.serial,
		Model:          strings.TrimSpace(model),
		AndroidVersion: strings.TrimSpace(version),
	}, nil
}

// TakePhoto triggers the camera shutter via a volume-key event, waits for
// the camera app to write the file, then pulls the newest photo off the
// device to destPath and removes it from the device.
func (m *Manager) TakePhoto(ctx context.Context, destPath string, progress func(string)) error {
	if !m.IsConnected() {
		return fmt.Errorf("no device connected")
	}
	report := func(msg string) {
		if progress != nil {
			progress(msg)
		}
	}

	before, err := m.listDevicePhotos(ctx)
	if err != nil {
		return err
	}

	report("déclenchement de la capture")
	// Key 24 is volume-up, which most camera apps map to the shutter.
	if _, err := m.shell(ctx, "input", "keyevent", "24"); err != nil {
		return fmt.Errorf("triggering capture: %w", err)
	}

	select {
	case <-time.After(m.opts.CaptureDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	after, err := m.listDevicePhotos(ctx)
	if err != nil {
		return err
	}

	newPhoto := newestNew(before, after)
	if newPhoto == "" {
		return fmt.Errorf("no new photo found on device after capture")
	}

	report(fmt.Sprintf("transfert de %s", filepath.Base(newPhoto)))
	if _, err := m.adb(ctx, "pull", newPhoto, destPath); err != nil {
		return fmt.Errorf("pulling %s to %s: %w", newPhoto, destPath, err)
	}

	if _, err := m.shell(ctx, "rm", newPhoto); err != nil {
		// The evidence copy is already safe; leaving the device copy behind
		// only risks re-transfer.
		m.logger.Warn("could not remove photo from device", "path", newPhoto)
	}

	report("transfert terminé")
	return nil
}

// locateAdb tries each candidate path until one answers "version".
func (m *Manager) locateAdb(ctx context.Context) (string, error) {
	candidates := CandidatePaths()
	if m.opts.Path != "" {
		candidates = []string{m.opts.Path}
	}

	var tried []string
	for _, path := range candidates {
		tctx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
		_, err := m.run(tctx, path, "version")
		cancel()
		if err == nil {
			m.logger.Debug("adb binary found", "path", path)
			return path, nil
		}
		tried = append(tried, path)
	}
	return "", fmt.Errorf("adb binary not found, tried: %s", strings.Join(tried, ", "))
}

// adb runs the adb binary with a per-invocation timeout.
func (m *Manager) adb(ctx context.Context, args ...string) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()
	return m.run(tctx, m.adbPath, args...)
}

// shell runs a shell command on the selected device.
func (m *Manager) shell(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-s", m.serial, "shell"}, args...)
	return m.adb(ctx, full...)
}

// listDevicePhotos lists the jpg files in every known DCIM directory.
// Missing directories are skipped.
func (m *Manager) listDevicePhotos(ctx context.Context) (map[string]struct{}, error) {
	photos := make(map[string]struct{})
	for _, dir := range dcimDirs {
		out, err := m.shell(ctx, "ls", dir)
		if err != nil {
			continue
		}
		for _, name := range ParsePhotoList(out) {
			photos[dir+"/"+name] = struct{}{}
		}
	}
	return photos, nil
}

// ParseDevices extracts authorized device serials from "adb devices" output.
func ParseDevices(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials
}

// ParsePhotoList extracts jpg filenames from "ls" output, matching the
// extension case-insensitively.
func ParsePhotoList(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.Contains(name, "No such file") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".jpg" || ext == ".jpeg" {
			names = append(names, name)
		}
	}
	return names
}

// newestNew returns a photo present in after but not in before. When several
// appeared, the lexicographically last one wins; camera filenames embed the
// timestamp, so that is the newest.
func newestNew(before, after map[string]struct{}) string {
	var newest string
	for p := range after {
		if _, ok := before[p]; ok {
			continue
		}
		if p > newest {
			newest = p
		}
	}
	return newest
}

// Compile-time check that Manager implements evidence.CaptureService
var _ evidence.CaptureService = (*Manager)(nil)
