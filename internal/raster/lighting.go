package raster

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader turns an eye-space face normal into a color.
type Shader interface {
	Shade(normal mgl32.Vec3) color.NRGBA
}

// NormalShader colors a face by its eye-space normal mapped to [0, 1].
type NormalShader struct{}

func (NormalShader) Shade(n mgl32.Vec3) color.NRGBA {
	return color.NRGBA{
		R: clamp255(float64(n[0]*0.5+0.5) * 255),
		G: clamp255(float64(n[1]*0.5+0.5) * 255),
		B: clamp255(float64(n[2]*0.5+0.5) * 255),
		A: 255,
	}
}

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir  mgl32.Vec3
	RimDir    mgl32.Vec3
	ViewDir   mgl32.Vec3
	HalfMain  mgl32.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light from the upper right, a rim
// light from behind and a viewer looking down -Z.
func DefaultLightConfig() LightConfig {
	lightDir := mgl32.Vec3{180, 260, 140}.Normalize()
	rimDir := mgl32.Vec3{-160, 130, -210}.Normalize()
	viewDir := mgl32.Vec3{0, 0, -1}

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  lightDir.Sub(viewDir).Normalize(),
		Ambient:   0.35,
		Hemi:      0.30,
		Direct:    1.10,
		Rim:       0.40,
		SpecInt:   0.35,
		SpecPow:   12.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mgl32.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(float64(normal.Dot(lc.LightDir)))
	ndlRim := math.Abs(float64(normal.Dot(lc.RimDir)))

	// Hemisphere fill
	hemi := (1.0-math.Abs(float64(normal[1])))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := math.Max(float64(normal.Dot(lc.HalfMain)), 0)
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// LitShader shades a flat base color with the LightConfig model,
// ACES tone mapping and sRGB encoding.
type LitShader struct {
	Light LightConfig
	Base  color.NRGBA
}

// NewLitShader returns a LitShader with the default lights and a grey base.
func NewLitShader() *LitShader {
	return &LitShader{Light: DefaultLightConfig(), Base: color.NRGBA{160, 160, 170, 255}}
}

func (s *LitShader) Shade(n mgl32.Vec3) color.NRGBA {
	k := s.Light.ComputeShade(n) * s.Light.Exposure
	enc := func(c uint8) uint8 {
		lin := srgbToLinear[c] * k
		return clamp255(math.Pow(ACESTonemap(lin), s.Light.InvGamma) * 255)
	}
	return color.NRGBA{enc(s.Base.R), enc(s.Base.G), enc(s.Base.B), s.Base.A}
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
