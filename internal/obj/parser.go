// Package obj reads the subset of Wavefront OBJ needed for rigid meshes:
// positions, normals and polygonal faces.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh holds de-indexed-by-corner geometry ready for upload:
// one position and one normal per vertex, and triangle indices.
type Mesh struct {
	Pos     []float32 // x, y, z per vertex
	Nor     []float32 // x, y, z per vertex
	Indices []uint32  // three per triangle
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Pos) / 3 }

// Position returns vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Pos[3*i], m.Pos[3*i+1], m.Pos[3*i+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Nor[3*i], m.Nor[3*i+1], m.Nor[3*i+2]}
}

// Load reads an OBJ file.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", path, err)
	}
	return m, nil
}

type corner struct{ v, n int }

// Parse reads OBJ data from r. Polygons are fan-triangulated.
// Faces without normals get their flat face normal.
func Parse(r io.Reader) (*Mesh, error) {
	var (
		verts   []mgl32.Vec3
		norms   []mgl32.Vec3
		m       Mesh
		corners = make(map[corner]uint32)
	)

	emit := func(c corner, flat mgl32.Vec3) uint32 {
		if c.n < 0 {
			// Flat-shaded corners are never shared between faces.
			idx := uint32(len(m.Pos) / 3)
			p := verts[c.v]
			m.Pos = append(m.Pos, p[0], p[1], p[2])
			m.Nor = append(m.Nor, flat[0], flat[1], flat[2])
			return idx
		}
		if idx, ok := corners[c]; ok {
			return idx
		}
		idx := uint32(len(m.Pos) / 3)
		p, n := verts[c.v], norms[c.n]
		m.Pos = append(m.Pos, p[0], p[1], p[2])
		m.Nor = append(m.Nor, n[0], n[1], n[2])
		corners[c] = idx
		return idx
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			verts = append(verts, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			norms = append(norms, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			cs := make([]corner, len(fields)-1)
			for i, f := range fields[1:] {
				c, err := parseCorner(f, len(verts), len(norms))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				cs[i] = c
			}
			for i := 1; i+1 < len(cs); i++ {
				a, b, c := cs[0], cs[i], cs[i+1]
				var flat mgl32.Vec3
				if a.n < 0 || b.n < 0 || c.n < 0 {
					flat = faceNormal(verts[a.v], verts[b.v], verts[c.v])
					a.n, b.n, c.n = -1, -1, -1
				}
				m.Indices = append(m.Indices, emit(a, flat), emit(b, flat), emit(c, flat))
			}
		default:
			// vt, o, g, s, usemtl, mtllib: not needed.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	return &m, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("need 3 components, have %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		x, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(x)
	}
	return v, nil
}

// parseCorner parses v, v/t, v//n or v/t/n. Texture indices are ignored.
// Indices are 1-based; negative ones count back from the last element.
func parseCorner(s string, nv, nn int) (corner, error) {
	parts := strings.Split(s, "/")
	v, err := resolveIndex(parts[0], nv)
	if err != nil {
		return corner{}, fmt.Errorf("vertex %q: %w", s, err)
	}
	c := corner{v: v, n: -1}
	if len(parts) == 3 && parts[2] != "" {
		n, err := resolveIndex(parts[2], nn)
		if err != nil {
			return corner{}, fmt.Errorf("normal %q: %w", s, err)
		}
		c.n = n
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range [1, %d]", i, count)
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}
