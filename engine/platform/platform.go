// Package platform owns the window and the native context it carries.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// The context must stay on the thread that created the window.
	runtime.LockOSThread()
}

// Window is a GLFW window with an OpenGL 4.6 core context made current on
// the calling thread.
type Window struct {
	handle *glfw.Window
}

// New creates the window and makes its context current. With debug set
// the context is created with native debug output available.
func New(title string, width, height int, debug bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{handle: handle}, nil
}

// ShouldClose reports whether the user requested to close the window.
func (w *Window) ShouldClose() bool { return w.handle.ShouldClose() }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.handle.SwapBuffers() }

// PollEvents pumps the window system event queue.
func (w *Window) PollEvents() { glfw.PollEvents() }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.handle.GetFramebufferSize() }

// OnResize registers a callback for framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

// Destroy tears down the window and the window system.
func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}
