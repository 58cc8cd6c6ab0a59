package testbed

import (
	"fmt"
	"strings"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/b2engine"
	"github.com/warrenfalk/rope/cpengine"
)

const (
	BackendBox2D    = "box2d"
	BackendChipmunk = "chipmunk"
)

// Backends lists the engines NewEngine understands.
func Backends() []string {
	return []string{BackendBox2D, BackendChipmunk}
}

func checkBackend(backend string) error {
	switch strings.ToLower(backend) {
	case BackendBox2D, BackendChipmunk, "cp", "":
		return nil
	}
	return fmt.Errorf("testbed: unknown backend %q", backend)
}

// NewEngine creates an empty engine of the named backend.
func NewEngine(backend string, gravity rope.Vec2, velocityIterations, positionIterations int) (rope.Engine, error) {
	switch strings.ToLower(backend) {
	case BackendBox2D, "":
		w := b2engine.New(gravity)
		if velocityIterations > 0 {
			w.VelocityIterations = velocityIterations
		}
		if positionIterations > 0 {
			w.PositionIterations = positionIterations
		}
		return w, nil
	case BackendChipmunk, "cp":
		return cpengine.New(gravity), nil
	}
	return nil, checkBackend(backend)
}
