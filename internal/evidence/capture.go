package evidence

import "context"

// DeviceInfo describes the connected Android device.
type DeviceInfo struct {
	Serial         string
	Model          string
	AndroidVersion string
}

// CaptureService is the device-bridge collaborator: it triggers a photo on
// the connected device and transfers the result to a destination path the
// core computed. Implementations wrap external command-line tooling; the
// core never shells out itself.
type CaptureService interface {
	// Connect establishes the device connection.
	Connect(ctx context.Context) error

	// IsConnected reports whether a device is currently reachable.
	IsConnected() bool

	// TakePhoto triggers a capture on the device and saves the image at
	// destPath. The progress callback, when non-nil, receives short
	// human-readable status lines during the transfer.
	TakePhoto(ctx context.Context, destPath string, progress func(status string)) error

	// GetDeviceInfo returns details about the connected device.
	GetDeviceInfo(ctx context.Context) (*DeviceInfo, error)
}
