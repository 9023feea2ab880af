// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/engine/debug"
	"github.com/Faultbox/portfolio-room/internal/engine/shader"
	"github.com/Faultbox/portfolio-room/internal/logger"
	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws the room as one outlined box per mesh, colored by the
// mesh's material binding.
type Renderer struct {
	config Config
	log    *zap.Logger

	// Flat-colored line program
	program *shader.Program

	// Unit cube edges
	boxVAO uint32
	boxVBO uint32

	palette *Palette
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		log:     logger.Named("renderer"),
		palette: NewPalette(),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.createBox()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.boxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boxVAO)
	}
	if r.boxVBO != 0 {
		gl.DeleteBuffers(1, &r.boxVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render clears the frame and draws every mesh of g.
func (r *Renderer) Render(g *scene.Graph, viewProj math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	mvpLoc := r.program.Uniform("uMVP")
	colorLoc := r.program.Uniform("uColor")
	gl.BindVertexArray(r.boxVAO)
	for _, n := range g.Meshes() {
		model, ok := BoxModel(n)
		if !ok {
			continue
		}
		mvp := viewProj.Mul(model)
		c := r.palette.Color(n.Binding)
		gl.UniformMatrix4fv(mvpLoc, 1, false, mvp.Ptr())
		gl.Uniform3f(colorLoc, c[0], c[1], c[2])
		gl.DrawArrays(gl.LINES, 0, debug.BoxEdgeVertexCount)
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// BoxModel maps the unit cube [-0.5, 0.5]^3 onto the node's world-space
// mesh box.
func BoxModel(n *scene.Node) (math.Mat4, bool) {
	b := n.Bounds
	if !b.Valid {
		return math.Mat4{}, false
	}
	center := b.Min.Add(b.Max).Scale(0.5)
	size := b.Max.Sub(b.Min)
	local := math.Translate(center.X, center.Y, center.Z).Mul(math.Scale(size.X, size.Y, size.Z))
	return n.WorldMatrix().Mul(local), true
}

const lineVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	uniform mat4 uMVP;

	void main() {
		gl_Position = uMVP * vec4(aPos, 1.0);
	}
`

const lineFragmentShader = `
	#version 410 core

	uniform vec3 uColor;
	out vec4 FragColor;

	void main() {
		FragColor = vec4(uColor, 1.0);
	}
`

// createBox uploads the edges of the unit cube [-0.5, 0.5]^3.
func (r *Renderer) createBox() {
	half := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	boxEdges := debug.BoxEdges(half.Scale(-1), half, 0)

	gl.GenVertexArrays(1, &r.boxVAO)
	gl.BindVertexArray(r.boxVAO)

	gl.GenBuffers(1, &r.boxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(boxEdges)*4, unsafe.Pointer(&boxEdges[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("box geometry created",
		zap.Uint32("vao", r.boxVAO),
		zap.Uint32("vbo", r.boxVBO),
	)
}
