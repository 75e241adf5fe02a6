package core

import (
	"errors"
	"strings"
)

var (
	// ErrDegenerateVector is returned when a zero-length vector is normalized
	ErrDegenerateVector = errors.New("degenerate vector: cannot normalize zero length")

	// ErrSceneNotConfigured is matched by every SceneNotConfiguredError
	ErrSceneNotConfigured = errors.New("scene not configured")
)

// SceneNotConfiguredError lists the collaborators a scene is missing before it can render
type SceneNotConfiguredError struct {
	Missing []string
}

func (e *SceneNotConfiguredError) Error() string {
	if len(e.Missing) == 0 {
		return ErrSceneNotConfigured.Error()
	}
	return ErrSceneNotConfigured.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

// Is lets errors.Is(err, ErrSceneNotConfigured) match
func (e *SceneNotConfiguredError) Is(target error) bool {
	return target == ErrSceneNotConfigured
}
