package adb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"objectif-go/internal/evidence"
)

func TestParseDevices(t *testing.T) {
	t.Run("authorized device", func(t *testing.T) {
		out := "List of devices attached\nR58M123ABC\tdevice\n\n"
		if got := ParseDevices(out); !reflect.DeepEqual(got, []string{"R58M123ABC"}) {
			t.Errorf("ParseDevices() = %v, want [R58M123ABC]", got)
		}
	})

	t.Run("unauthorized and offline devices are skipped", func(t *testing.T) {
		out := "List of devices attached\n" +
			"R58M123ABC\tunauthorized\n" +
			"emulator-5554\toffline\n" +
			"R58M456DEF\tdevice\n"
		if got := ParseDevices(out); !reflect.DeepEqual(got, []string{"R58M456DEF"}) {
			t.Errorf("ParseDevices() = %v, want [R58M456DEF]", got)
		}
	})

	t.Run("no devices", func(t *testing.T) {
		if got := ParseDevices("List of devices attached\n\n"); len(got) != 0 {
			t.Errorf("ParseDevices() = %v, want empty", got)
		}
	})
}

func TestParsePhotoList(t *testing.T) {
	out := "IMG_20240115_103000.jpg\nIMG_20240115_103001.JPG\nvideo.mp4\nnotes.txt\nphoto.jpeg\n"
	got := ParsePhotoList(out)
	want := []string{"IMG_20240115_103000.jpg", "IMG_20240115_103001.JPG", "photo.jpeg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePhotoList() = %v, want %v", got, want)
	}

	if got := ParsePhotoList("ls: /sdcard/DCIM/Camera: No such file or directory\n"); len(got) != 0 {
		t.Errorf("ParsePhotoList(missing dir) = %v, want empty", got)
	}
}

func TestNewestNew(t *testing.T) {
	before := map[string]struct{}{
		"/sdcard/DCIM/Camera/IMG_001.jpg": {},
	}
	after := map[string]struct{}{
		"/sdcard/DCIM/Camera/IMG_001.jpg": {},
		"/sdcard/DCIM/Camera/IMG_002.jpg": {},
		"/sdcard/DCIM/Camera/IMG_003.jpg": {},
	}

	if got := newestNew(before, after); got != "/sdcard/DCIM/Camera/IMG_003.jpg" {
		t.Errorf("newestNew() = %q, want IMG_003", got)
	}
	if got := newestNew(before, before); got != "" {
		t.Errorf("newestNew(unchanged) = %q, want empty", got)
	}
}

// fakeDevice scripts adb invocations for Manager tests.
type fakeDevice struct {
	photos   []string // names in /sdcard/DCIM/Camera
	captured bool     // keyevent received; next ls shows the new photo
	pulled   []string
	removed  []string
}

func (d *fakeDevice) run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := strings.Join(args, " ")
	switch {
	case cmd == "version":
		return "Android Debug Bridge version 1.0.41", nil
	case cmd == "start-server":
		return "", nil
	case cmd == "devices":
		return "List of devices attached\nFAKE001\tdevice\n", nil
	case strings.HasSuffix(cmd, "input keyevent 24"):
		d.captured = true
		d.photos = append(d.photos, "IMG_NEW.jpg")
		return "", nil
	case strings.Contains(cmd, "shell ls /sdcard/DCIM/Camera"):
		return strings.Join(d.photos, "\n"), nil
	case strings.Contains(cmd, "shell ls "):
		return "", fmt.Errorf("ls: no such directory")
	case strings.Contains(cmd, "getprop ro.product.model"):
		return "Fake Phone\n", nil
	case strings.Contains(cmd, "getprop ro.build.version.release"):
		return "14\n", nil
	case args[0] == "pull":
		d.pulled = append(d.pulled, args[1])
		return "", os.WriteFile(args[2], []byte{0xFF}, 0644)
	case strings.Contains(cmd, "shell rm "):
		d.removed = append(d.removed, args[len(args)-1])
		return "", nil
	}
	return "", fmt.Errorf("unexpected command: %s %s", name, cmd)
}

func newFakeManager(d *fakeDevice) *Manager {
	m := NewManager(Options{Path: "adb", CaptureDelay: time.Millisecond}, evidence.NewNopLogger())
	m.run = d.run
	return m
}

func TestManager_Connect(t *testing.T) {
	m := newFakeManager(&fakeDevice{})

	if m.IsConnected() {
		t.Fatal("IsConnected() before Connect = true")
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !m.IsConnected() {
		t.Error("IsConnected() after Connect = false")
	}

	info, err := m.GetDeviceInfo(context.Background())
	if err != nil {
		t.Fatalf("GetDeviceInfo() error = %v", err)
	}
	if info.Serial != "FAKE001" || info.Model != "Fake Phone" || info.AndroidVersion != "14" {
		t.Errorf("GetDeviceInfo() = %+v", info)
	}
}

func TestManager_TakePhoto(t *testing.T) {
	device := &fakeDevice{photos: []string{"IMG_OLD.jpg"}}
	m := newFakeManager(device)
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	destPath := filepath.Join(t.TempDir(), "01_TEL_Ferme_1.jpg")
	var progress []string
	err := m.TakePhoto(context.Background(), destPath, func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("TakePhoto() error = %v", err)
	}

	if _, err := os.Stat(destPath); err != nil {
		t.Errorf("destination file missing: %v", err)
	}
	if want := []string{"/sdcard/DCIM/Camera/IMG_NEW.jpg"}; !reflect.DeepEqual(device.pulled, want) {
		t.Errorf("pulled = %v, want %v", device.pulled, want)
	}
	if !reflect.DeepEqual(device.removed, device.pulled) {
		t.Errorf("removed = %v, want %v", device.removed, device.pulled)
	}
	if len(progress) == 0 {
		t.Error("no progress messages reported")
	}
}

func TestManager_TakePhoto_noNewPhoto(t *testing.T) {
	device := &fakeDevice{photos: []string{"IMG_OLD.jpg"}}
	m := newFakeManager(device)
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	// The shutter event lands but the camera writes nothing.
	device.captured = true
	m.run = func(ctx context.Context, name string, args ...string) (string, error) {
		cmd := strings.Join(args, " ")
		if strings.HasSuffix(cmd, "input keyevent 24") {
			return "", nil
		}
		return device.run(ctx, name, args...)
	}

	destPath := filepath.Join(t.TempDir(), "01_TEL_Ferme_1.jpg")
	err := m.TakePhoto(context.Background(), destPath, nil)
	if err == nil || !strings.Contains(err.Error(), "no new photo") {
		t.Errorf("TakePhoto() error = %v, want no-new-photo error", err)
	}
}
