package desktop

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/game"
	"racer/internal/track"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// particleStride is x, y, size, r, g, b, a.
const particleStride = 7

type rgba [4]float32

func colorOf(c track.RGB) rgba {
	return rgba{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}

var (
	shadowColor       = rgba{0.08, 0.08, 0.08, 1}
	frontMarkerColor  = rgba{1, 1, 1, 1}
	reverseLightColor = rgba{1, 0.95, 0.75, 1}
)

// Renderer draws the track image and the cars. Coordinates are track
// pixels; the framebuffer is whatever size the window has.
type Renderer struct {
	trackProg uint32
	carProg   uint32
	quadVAO   uint32
	quadVBO   uint32
	trackTex  uint32

	uTrackTex int32

	uCentre     int32
	uSize       int32
	uRotation   int32
	uResolution int32
	uColor      int32

	width, height int
}

func NewRenderer(tr *track.Track) (*Renderer, error) {
	trackProg, err := linkProgram(trackVertSrc, trackFragSrc)
	if err != nil {
		return nil, fmt.Errorf("track program: %w", err)
	}
	carProg, err := linkProgram(carVertSrc, carFragSrc)
	if err != nil {
		gl.DeleteProgram(trackProg)
		return nil, fmt.Errorf("car program: %w", err)
	}

	r := &Renderer{
		trackProg: trackProg,
		carProg:   carProg,
		width:     tr.Width(),
		height:    tr.Height(),
	}

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles), shared by both programs.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = vao
	r.quadVBO = vbo

	gl.UseProgram(trackProg)
	r.uTrackTex = gl.GetUniformLocation(trackProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTrackTex, 0)

	gl.UseProgram(carProg)
	r.uCentre = gl.GetUniformLocation(carProg, gl.Str("uCentre\x00"))
	r.uSize = gl.GetUniformLocation(carProg, gl.Str("uSize\x00"))
	r.uRotation = gl.GetUniformLocation(carProg, gl.Str("uRotation\x00"))
	r.uResolution = gl.GetUniformLocation(carProg, gl.Str("uResolution\x00"))
	r.uColor = gl.GetUniformLocation(carProg, gl.Str("uColor\x00"))

	r.uploadTrack(tr)
	return r, nil
}

// uploadTrack copies the track's visual raster into a texture. The track is
// immutable, so this happens once.
func (r *Renderer) uploadTrack(tr *track.Track) {
	gl.GenTextures(1, &r.trackTex)
	gl.BindTexture(gl.TEXTURE_2D, r.trackTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	px := tr.Visual()
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(tr.Width()), int32(tr.Height()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(px),
	)
}

func (r *Renderer) Destroy() {
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	for _, id := range []uint32{r.trackProg, r.carProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.trackTex != 0 {
		gl.DeleteTextures(1, &r.trackTex)
	}
}

// Draw renders one frame: the track, the cars, then particles on top.
// particles is in fx.ParticleSystem.RenderData layout.
func (r *Renderer) Draw(vehicles [game.Players]*game.Vehicle, particles []float32, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindVertexArray(r.quadVAO)

	gl.UseProgram(r.trackProg)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.trackTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.UseProgram(r.carProg)
	gl.Uniform2f(r.uResolution, float32(r.width), float32(r.height))
	for _, v := range vehicles {
		if v != nil {
			r.drawCar(v)
		}
	}
	for i := 0; i+particleStride <= len(particles); i += particleStride {
		p := particles[i : i+particleStride]
		gl.Uniform2f(r.uCentre, p[0], p[1])
		gl.Uniform2f(r.uSize, p[2], p[2])
		gl.Uniform1f(r.uRotation, 0)
		gl.Uniform4f(r.uColor, p[3], p[4], p[5], p[6])
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
}

func (r *Renderer) drawCar(v *game.Vehicle) {
	rot := v.Heading * math.Pi / 180
	at := func(forward, side float64) game.Vec2 {
		return v.Pos.Add(game.Vec2{X: forward, Y: side}.Rotate(v.Heading))
	}

	r.quad(v.Pos.Add(game.Vec2{X: 2, Y: 2}), v.Length, v.Width, rot, shadowColor)
	r.quad(v.Pos, v.Length, v.Width, rot, colorOf(v.Color))

	// Front marker so the heading is readable at a glance.
	r.quad(at(v.Length/2-3, 0), 4, v.Width*0.7, rot, frontMarkerColor)

	if v.Reversing {
		for _, side := range []float64{-1, 1} {
			r.quad(at(-v.Length/2+2, side*(v.Width/2-3)), 3, 3, rot, reverseLightColor)
		}
	}
}

func (r *Renderer) quad(centre game.Vec2, length, width, rot float64, c rgba) {
	gl.Uniform2f(r.uCentre, float32(centre.X), float32(centre.Y))
	gl.Uniform2f(r.uSize, float32(length), float32(width))
	gl.Uniform1f(r.uRotation, float32(rot))
	gl.Uniform4f(r.uColor, c[0], c[1], c[2], c[3])
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
