package model

// VertexLayout selects which deformation path a model's vertex stream is
// packed for.
type VertexLayout int

const (
	// LayoutIndexed streams bone indices and weights per vertex; the blend
	// against the bone storage buffer happens in the vertex shader.
	LayoutIndexed VertexLayout = iota

	// LayoutBaked streams a pre-blended per-vertex transform computed on the
	// CPU each frame; the vertex shader only reassembles it.
	LayoutBaked
)

// String returns the layout name for logging and pipeline keys.
func (l VertexLayout) String() string {
	switch l {
	case LayoutIndexed:
		return "indexed"
	case LayoutBaked:
		return "baked"
	default:
		return "unknown"
	}
}

// Vertex is the CPU-side source form of a character vertex. It always carries
// bone indices and weights; packing for LayoutBaked consumes them to bake the
// per-vertex transform instead of streaming them.
type Vertex struct {
	// Position is the model-space position.
	Position [3]float32

	// Normal is the model-space normal.
	Normal [3]float32

	// UV is the texture coordinate.
	UV [2]float32

	// EdgeScale scales the outline extrusion for this vertex. Zero disables
	// the outline locally.
	EdgeScale float32

	// BoneIndices are the indices of up to four influencing bones.
	BoneIndices [4]int32

	// BoneWeights are the blend weights for each bone. An all-zero weight set
	// marks an unrigged vertex that deforms by the identity.
	BoneWeights [4]float32
}

// SubMesh is a contiguous index range drawn with a single material. A
// character mesh is a sequence of submeshes sharing one vertex and one index
// buffer.
type SubMesh struct {
	// Name is the submesh identifier, usually the material name.
	Name string

	// MaterialIndex references the model's material list.
	MaterialIndex int

	// IndexOffset is the first index of this submesh within the index buffer.
	IndexOffset int

	// IndexCount is the number of indices in this submesh.
	IndexCount int
}
