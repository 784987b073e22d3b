package export

import (
	"bytes"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/victorbstan/polyvox/mesh"
)

// ExportGLB encodes a single surface mesh as an in-memory GLB document.
// Vertex normals come from m itself (the extractor's axis-aligned edge
// normals); if a vertex has no normal, it is left at (0,0,0) rather than
// computed here.
func ExportGLB(m *mesh.SurfaceMesh, palette Palette) ([]byte, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "polyvox -> GLB"
	if err := appendMeshNode(doc, m, palette, "ChunkMesh"); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ExportGLBFile is ExportGLB followed by a write to path.
func ExportGLBFile(m *mesh.SurfaceMesh, palette Palette, path string) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "polyvox -> GLB"
	if err := appendMeshNode(doc, m, palette, "ChunkMesh"); err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}

// NamedMesh pairs a mesh with the name its glTF node should carry, so a
// multi-chunk export can be told apart in a viewer's scene tree.
type NamedMesh struct {
	Name string
	Mesh *mesh.SurfaceMesh
}

// ExportGLBMulti combines several chunk meshes into one glTF document,
// one node per entry, each kept in the coordinates of the volume its mesh
// was extracted from (the caller, not this function, is responsible for
// shifting vertex positions into a shared world frame beforehand).
func ExportGLBMulti(meshes []NamedMesh, palette Palette, path string) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "polyvox -> GLB"
	for _, nm := range meshes {
		if err := appendMeshNode(doc, nm.Mesh, palette, nm.Name); err != nil {
			return err
		}
	}
	return gltf.SaveBinary(doc, path)
}

func appendMeshNode(doc *gltf.Document, m *mesh.SurfaceMesh, palette Palette, name string) error {
	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	colors := make([][4]float32, len(m.Vertices))
	hasAlpha := false

	for i, v := range m.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
		normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		rgba, err := palette.ColorFor(v.Material)
		if err != nil {
			return err
		}
		colors[i] = rgba
		if rgba[3] < 1.0 {
			hasAlpha = true
		}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	matIndex := len(doc.Materials)
	doc.Materials = append(doc.Materials, material)

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(matIndex),
	}

	meshGltf := &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}}
	doc.Meshes = append(doc.Meshes, meshGltf)
	node := &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)}
	doc.Nodes = append(doc.Nodes, node)
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{})
		doc.Scene = gltf.Index(0)
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return nil
}
