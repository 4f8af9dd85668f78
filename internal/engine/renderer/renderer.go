// Package renderer provides OpenGL rendering for rewritten terrain tiles.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/terravista/internal/engine/terrain"
	"github.com/Faultbox/terravista/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	ClearColor [3]float32
}

// tileBuffer is one uploaded tile: interleaved position+normal VBO.
type tileBuffer struct {
	vao      uint32
	vbo      uint32
	count    int32
	material terrain.Material
}

// Renderer draws rewritten terrain tiles with the fixed debug material.
// Tile positions are uploaded relative to the tile set's bounds center so
// geocentric magnitudes survive the float32 GPU boundary.
type Renderer struct {
	config Config

	program     uint32
	locViewProj int32
	locDiffuse  int32
	locSpecular int32

	tiles  []tileBuffer
	center mgl64.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.program, err = r.createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.locViewProj = gl.GetUniformLocation(r.program, gl.Str("uViewProj\x00"))
	r.locDiffuse = gl.GetUniformLocation(r.program, gl.Str("uDiffuse\x00"))
	r.locSpecular = gl.GetUniformLocation(r.program, gl.Str("uSpecular\x00"))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.clearTiles()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// UploadTileSet replaces the uploaded geometry with the given tiles. All
// positions are rebased onto the set's bounds center before the float32
// conversion.
func (r *Renderer) UploadTileSet(bounds terrain.Bounds, tiles []*terrain.Tile) {
	r.clearTiles()
	r.center = bounds.Center()

	for _, tile := range tiles {
		buf := r.uploadTile(tile)
		r.tiles = append(r.tiles, buf)
	}

	logger.Info("tile set uploaded",
		zap.Int("tiles", len(tiles)),
		zap.Float64("center_x", r.center.X()),
		zap.Float64("center_y", r.center.Y()),
		zap.Float64("center_z", r.center.Z()),
	)
}

// Center returns the world-space point the uploaded geometry is rebased on.
func (r *Renderer) Center() mgl64.Vec3 {
	return r.center
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Draws are unbatched; nothing to flush
}

// DrawTiles draws all uploaded tiles with the given view-projection
// matrix. The matrix must already account for the rebase center.
func (r *Renderer) DrawTiles(viewProj mgl64.Mat4) {
	vp := mat4To32(viewProj)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &vp[0])

	for _, tile := range r.tiles {
		gl.Uniform3f(r.locDiffuse,
			tile.material.Diffuse[0],
			tile.material.Diffuse[1],
			tile.material.Diffuse[2],
		)
		gl.Uniform1f(r.locSpecular, tile.material.Specular)

		gl.BindVertexArray(tile.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, tile.count)
	}
	gl.BindVertexArray(0)
}

// uploadTile builds the interleaved position+normal buffer for one tile.
func (r *Renderer) uploadTile(tile *terrain.Tile) tileBuffer {
	vertices := make([]float32, 0, len(tile.Positions)*6)
	for i, p := range tile.Positions {
		rel := p.Sub(r.center)
		n := tile.Normals[i]
		vertices = append(vertices,
			float32(rel.X()), float32(rel.Y()), float32(rel.Z()),
			float32(n.X()), float32(n.Y()), float32(n.Z()),
		)
	}

	buf := tileBuffer{
		count:    int32(len(tile.Positions)),
		material: tile.Material,
	}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("tile uploaded",
		zap.String("tile", tile.Name),
		zap.Uint32("vao", buf.vao),
		zap.Int32("vertices", buf.count),
	)
	return buf
}

func (r *Renderer) clearTiles() {
	for _, tile := range r.tiles {
		if tile.vao != 0 {
			gl.DeleteVertexArrays(1, &tile.vao)
		}
		if tile.vbo != 0 {
			gl.DeleteBuffers(1, &tile.vbo)
		}
	}
	r.tiles = nil
}

// createShaderProgram creates the debug material shader program.
func (r *Renderer) createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;

		uniform mat4 uViewProj;

		out vec3 vNormal;

		void main() {
			gl_Position = uViewProj * vec4(aPos, 1.0);
			vNormal = aNormal;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vNormal;

		uniform vec3 uDiffuse;
		uniform float uSpecular;

		out vec4 FragColor;

		void main() {
			vec3 lightDir = normalize(vec3(0.4, 0.6, 0.7));
			float lit = max(abs(dot(normalize(vNormal), lightDir)), 0.15);
			FragColor = vec4(uDiffuse * lit + vec3(uSpecular) * lit * lit, 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}

// mat4To32 narrows a float64 matrix for the GL uniform upload.
func mat4To32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 16; i++ {
		out[i] = float32(m[i])
	}
	return out
}
