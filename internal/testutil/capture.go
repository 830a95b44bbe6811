package testutil

import (
	"context"
	"fmt"
	"os"

	"objectif-go/internal/evidence"
)

// StubCaptureService simulates the device bridge: TakePhoto writes a stub
// file at the destination path, the way a real capture materializes a photo
// on disk.
type StubCaptureService struct {
	Connected bool

	// FailCapture makes TakePhoto return an error without writing.
	FailCapture bool

	// Content is written at the destination path; defaults to a marker byte.
	Content []byte

	// Captured records every destination path TakePhoto received.
	Captured []string
}

// NewStubCaptureService creates a connected stub.
func NewStubCaptureService() *StubCaptureService {
	return &StubCaptureService{Connected: true}
}

func (s *StubCaptureService) Connect(ctx context.Context) error {
	s.Connected = true
	return nil
}

func (s *StubCaptureService) IsConnected() bool { return s.Connected }

func (s *StubCaptureService) TakePhoto(ctx context.Context, destPath string, progress func(string)) error {
	if s.FailCapture {
		return fmt.Errorf("capture failed")
	}
	if progress != nil {
		progress("transfert de " + destPath)
	}

	content := s.Content
	if content == nil {
		content = []byte{0xFF}
	}
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return err
	}
	s.Captured = append(s.Captured, destPath)
	return nil
}

func (s *StubCaptureService) GetDeviceInfo(ctx context.Context) (*evidence.DeviceInfo, error) {
	if !s.Connected {
		return nil, fmt.Errorf("no device connected")
	}
	return &evidence.DeviceInfo{Serial: "stub-serial", Model: "Stub Phone", AndroidVersion: "14"}, nil
}

// Compile-time check that StubCaptureService implements evidence.CaptureService
var _ evidence.CaptureService = (*StubCaptureService)(nil)
