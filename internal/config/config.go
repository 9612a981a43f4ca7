package config

import "sync"

// ClientSettings holds runtime client configuration
type ClientSettings struct {
	mu          sync.RWMutex
	fov         float32 // vertical, degrees
	sensitivity float32 // radians per pixel
	maxFPS      int
}

var globalClientSettings = &ClientSettings{
	fov:         75,
	sensitivity: 0.002,
	maxFPS:      0, // unlimited
}

// GetFOV returns the vertical field of view in degrees
func GetFOV() float32 {
	globalClientSettings.mu.RLock()
	defer globalClientSettings.mu.RUnlock()
	return globalClientSettings.fov
}

// SetFOV sets the field of view
func SetFOV(fov float32) {
	globalClientSettings.mu.Lock()
	defer globalClientSettings.mu.Unlock()

	// Clamp to reasonable values
	if fov < 30 {
		fov = 30
	}
	if fov > 120 {
		fov = 120
	}

	globalClientSettings.fov = fov
}

// GetSensitivity returns mouse look sensitivity
func GetSensitivity() float32 {
	globalClientSettings.mu.RLock()
	defer globalClientSettings.mu.RUnlock()
	return globalClientSettings.sensitivity
}

// SetSensitivity sets mouse look sensitivity; non-positive values are ignored
func SetSensitivity(s float32) {
	if s <= 0 {
		return
	}
	globalClientSettings.mu.Lock()
	defer globalClientSettings.mu.Unlock()
	globalClientSettings.sensitivity = s
}

// GetMaxFPS returns the frame cap, 0 meaning unlimited
func GetMaxFPS() int {
	globalClientSettings.mu.RLock()
	defer globalClientSettings.mu.RUnlock()
	return globalClientSettings.maxFPS
}

// SetMaxFPS sets the frame cap
func SetMaxFPS(fps int) {
	if fps < 0 {
		fps = 0
	}
	globalClientSettings.mu.Lock()
	defer globalClientSettings.mu.Unlock()
	globalClientSettings.maxFPS = fps
}

// ApplyClient copies a loaded client section into the runtime settings.
func ApplyClient(c ClientSection) {
	if c.FOV > 0 {
		SetFOV(float32(c.FOV))
	}
	if c.Sensitivity > 0 {
		SetSensitivity(float32(c.Sensitivity))
	}
	SetMaxFPS(c.MaxFPS)
}
