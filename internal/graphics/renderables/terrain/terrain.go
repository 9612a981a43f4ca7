package terrain

import (
	"blockworld/internal/graphics"
	renderer "blockworld/internal/graphics/renderer"
	"blockworld/internal/meshing"
	"blockworld/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;
layout (location = 3) in vec2 aUV;

uniform mat4 view;
uniform mat4 proj;

out vec3 vNormal;
out vec3 vColor;
out float vDepth;

void main() {
    vec4 viewPos = view * vec4(aPos, 1.0);
    vNormal = aNormal;
    vColor = aColor;
    vDepth = -viewPos.z;
    gl_Position = proj * viewPos;
}
`

const fragmentShader = `#version 410 core
in vec3 vNormal;
in vec3 vColor;
in float vDepth;

uniform vec3 lightDir;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), normalize(lightDir)), 0.0);
    vec3 lit = vColor * (0.6 + 0.4 * diffuse);
    float fog = clamp((vDepth - fogNear) / (fogFar - fogNear), 0.0, 1.0);
    FragColor = vec4(mix(lit, fogColor, fog), 1.0);
}
`

const (
	FogNear = 60.0
	FogFar  = 180.0
)

type gpuMesh struct {
	vao     uint32
	vbos    [4]uint32
	ebo     uint32
	indices int32
}

// Terrain uploads world meshes and draws them with vertex colors, a single
// directional light and distance fog. It is the world's Scene.
type Terrain struct {
	shader *graphics.Shader
	meshes map[*meshing.Mesh]*gpuMesh
}

// NewTerrain creates a new terrain renderable
func NewTerrain() *Terrain {
	return &Terrain{meshes: make(map[*meshing.Mesh]*gpuMesh)}
}

// Init compiles the terrain shader
func (t *Terrain) Init() error {
	var err error
	t.shader, err = graphics.NewShader(vertexShader, fragmentShader)
	return err
}

// Attach uploads m to GPU buffers.
func (t *Terrain) Attach(m *meshing.Mesh) {
	defer profiling.Track("terrain.Attach")()
	if m == nil || m.Empty() {
		return
	}
	g := &gpuMesh{indices: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(4, &g.vbos[0])
	upload := func(slot uint32, data []float32, size int32) {
		gl.BindBuffer(gl.ARRAY_BUFFER, g.vbos[slot])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(slot)
		gl.VertexAttribPointerWithOffset(slot, size, gl.FLOAT, false, size*4, 0)
	}
	upload(0, m.Positions, 3)
	upload(1, m.Normals, 3)
	upload(2, m.Colors, 3)
	upload(3, m.UVs, 2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	t.meshes[m] = g
}

// Detach releases the buffers owned by m.
func (t *Terrain) Detach(m *meshing.Mesh) {
	g, ok := t.meshes[m]
	if !ok {
		return
	}
	release(g)
	delete(t.meshes, m)
}

func release(g *gpuMesh) {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(4, &g.vbos[0])
	gl.DeleteBuffers(1, &g.ebo)
}

// Render draws every attached mesh
func (t *Terrain) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderTerrain")()

	t.shader.Use()
	t.shader.SetMatrix4("view", &ctx.View[0])
	t.shader.SetMatrix4("proj", &ctx.Proj[0])
	t.shader.SetVector3("lightDir", 0.4, 1.0, 0.3)
	t.shader.SetVector3("fogColor", renderer.SkyColor[0], renderer.SkyColor[1], renderer.SkyColor[2])
	t.shader.SetFloat("fogNear", FogNear)
	t.shader.SetFloat("fogFar", FogFar)

	for _, g := range t.meshes {
		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indices, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (t *Terrain) Dispose() {
	for m, g := range t.meshes {
		release(g)
		delete(t.meshes, m)
	}
	t.shader.Delete()
}
