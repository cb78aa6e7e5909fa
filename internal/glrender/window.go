// Package glrender puts the figure on screen: a GLFW window with an
// OpenGL 4.1 core context, shader programs and uploaded meshes.
package glrender

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// Window is a GLFW window with a current GL context.
// It implements viewer.Target.
type Window struct {
	win    *glfw.Window
	onChar func(rune)
}

// NewWindow initializes GLFW, opens a w x h window and loads GL.
func NewWindow(title string, w, h int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glrender: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(w, h, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glrender: create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glrender: gl init: %w", err)
	}
	// Drop anything the loader left in the error queue.
	for gl.GetError() != gl.NO_ERROR {
	}
	glfw.SwapInterval(1)

	gl.ClearColor(1, 1, 1, 1)
	gl.Enable(gl.DEPTH_TEST)

	ww := &Window{win: win}
	win.SetKeyCallback(ww.key)
	win.SetCharCallback(ww.char)
	return ww, nil
}

// Versions returns the GL and GLSL version strings of the context.
func Versions() (glVersion, glslVersion string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
}

// OnChar registers fn to receive typed characters.
func (w *Window) OnChar(fn func(rune)) { w.onChar = fn }

func (w *Window) key(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
}

func (w *Window) char(_ *glfw.Window, r rune) {
	if w.onChar != nil {
		w.onChar(r)
	}
}

// Viewport sizes the GL viewport to the framebuffer and returns its size.
func (w *Window) Viewport() (int, int) {
	width, height := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	return width, height
}

// Clear clears the color and depth buffers.
func (w *Window) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Run calls frame once per refresh until the window is asked to close
// or frame fails. Input callbacks run between frames.
func (w *Window) Run(frame func() error) error {
	for !w.win.ShouldClose() {
		if err := frame(); err != nil {
			return err
		}
		CheckError("frame")
		w.win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// Close destroys the window and shuts GLFW down.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
