package glrender

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var errNames = map[uint32]string{
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
	gl.STACK_UNDERFLOW:               "GL_STACK_UNDERFLOW",
	gl.STACK_OVERFLOW:                "GL_STACK_OVERFLOW",
}

// CheckError drains the GL error queue, logging each error with the
// given call site, and reports whether any were pending.
func CheckError(at string) bool {
	found := false
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return found
		}
		found = true
		name, ok := errNames[code]
		if !ok {
			name = fmt.Sprintf("0x%04x", code)
		}
		slog.Warn("gl error", "at", at, "error", name)
	}
}
