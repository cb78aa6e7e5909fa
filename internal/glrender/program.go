package glrender

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute names the vertex shader reads.
const (
	AttribPosition = "aPos"
	AttribNormal   = "aNor"
)

// Program is a linked vertex + fragment shader pair with named uniform
// and attribute locations. It implements figure.Program.
type Program struct {
	handle   uint32
	uniforms map[string]int32
	attribs  map[string]int32
}

// LoadProgram reads, compiles and links the two shader files.
// Context must be current.
func LoadProgram(vertPath, fragPath string) (*Program, error) {
	vsrc, err := os.ReadFile(vertPath)
	if err != nil {
		return nil, fmt.Errorf("glrender: read shader: %w", err)
	}
	fsrc, err := os.ReadFile(fragPath)
	if err != nil {
		return nil, fmt.Errorf("glrender: read shader: %w", err)
	}
	return NewProgram(string(vsrc), string(fsrc))
}

// NewProgram compiles and links GLSL sources.
func NewProgram(vertSrc, fragSrc string) (*Program, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("glrender: vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("glrender: fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vs)
	gl.AttachShader(handle, fs)
	gl.LinkProgram(handle)
	gl.DetachShader(handle, vs)
	gl.DetachShader(handle, fs)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(handle)
		return nil, fmt.Errorf("glrender: link: %s", strings.TrimRight(msg, "\x00"))
	}
	CheckError("link")

	return &Program{
		handle:   handle,
		uniforms: make(map[string]int32),
		attribs:  make(map[string]int32),
	}, nil
}

func compileShader(src string, typ uint32) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// AddUniform looks up and caches a uniform location. A name the linker
// optimized away is logged and later writes to it are no-ops.
func (p *Program) AddUniform(name string) {
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Warn("uniform not found", "name", name)
	}
	p.uniforms[name] = loc
}

// AddAttribute looks up and caches a vertex attribute location.
func (p *Program) AddAttribute(name string) {
	loc := gl.GetAttribLocation(p.handle, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Warn("attribute not found", "name", name)
	}
	p.attribs[name] = loc
}

// Attribute returns a cached attribute location, or -1.
func (p *Program) Attribute(name string) int32 {
	loc, ok := p.attribs[name]
	if !ok {
		return -1
	}
	return loc
}

func (p *Program) Bind()   { gl.UseProgram(p.handle) }
func (p *Program) Unbind() { gl.UseProgram(0) }

// SetMatrix uploads a column-major 4x4 matrix to a cached uniform.
func (p *Program) SetMatrix(name string, m mgl32.Mat4) {
	loc, ok := p.uniforms[name]
	if !ok || loc < 0 {
		return
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}
