// Package device stands in for the handset resources the portfolio uses:
// runtime permissions, a location fix and the camera's image files.
package device

// Permissions answers grant checks synchronously. Acquiring a grant is the
// host's job.
type Permissions interface {
	CameraGranted() bool
	LocationGranted() bool
}

// StaticPermissions reports fixed grants, typically read from configuration.
type StaticPermissions struct {
	Camera   bool
	Location bool
}

// CameraGranted implements Permissions.
func (p StaticPermissions) CameraGranted() bool { return p.Camera }

// LocationGranted implements Permissions.
func (p StaticPermissions) LocationGranted() bool { return p.Location }
