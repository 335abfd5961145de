// annotations.go defines the annotation types, argument constants, and parser for
// the WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @mmd: that drive automatic struct injection, bind group declaration, and
// resource provider registration. The parsed results are stored as Annotation values
// and consumed by the PreProcessor and the renderer to wire GPU resources without
// manual low-level plumbing.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@mmd:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered definition into
	// the shader at the annotation site. Registered sources are either struct
	// definitions (embedded from a Go GPU type's .wgsl asset) or the skinTransform
	// function variants. This annotation does not produce a declaration and is
	// consumed entirely during pre-processing.
	//
	// Syntax: //@mmd:include <key>
	//
	// Example: //@mmd:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// viewer to semantically match bindings to resource providers without string lookups.
	//
	// Syntax: //@mmd:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@mmd:group 0 0 storage_uniform uCamera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and
	// binding without generating any WGSL output. The WGSL binding declaration remains
	// hand-written in the shader source directly below the annotation. This is used for
	// bindings that contain raw WGSL types (textures, samplers, flat matrix arrays)
	// which have no corresponding registered struct.
	//
	// An optional binding role can be appended after the provider identity to declare
	// the semantic purpose of an individual binding within a multi-binding provider
	// group, e.g. which of a material's three texture slots a binding fulfils.
	//
	// Syntax:
	//   //@mmd:provider <group> <binding> <provider_identity>
	//   //@mmd:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Examples:
	//   //@mmd:provider 2 1 material sphere_texture
	//   //@mmd:provider 3 0 mesh
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @mmd: annotation from a WGSL shader source
// line. It carries the annotation type, its arguments, the source line number, and
// optional group/binding indices. Annotations of type AnnotationTypeBindingGroup and
// AnnotationTypeProvider are appended to the PreProcessor's declarations list for
// consumption by the renderer during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = registered source key (e.g. "camera")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "material"), [1] = binding role (optional)
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this
	// annotation was found. Used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// ── Registered source arguments ───────────────────────────────────────────────
// These identify registered WGSL sources. They can appear in @mmd:include
// annotations (to inject the source) and, for struct sources, in @mmd:group
// annotations as the type field.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgLight identifies the LightUniform struct.
	// Source: engine/light/assets/light_uniform.wgsl
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgMaterial identifies the MaterialUniform struct for the color pass.
	// Source: engine/renderer/material/assets/material_uniform.wgsl
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgEdge identifies the EdgeUniform struct for the edge pass.
	// Source: engine/renderer/material/assets/edge_uniform.wgsl
	AnnotationArgEdge AnnotationArg = "edge"

	// annotationArgVertexIndexed identifies the VertexInput struct for indexed-bone pipelines.
	// Source: engine/model/assets/vertex_indexed.wgsl
	annotationArgVertexIndexed AnnotationArg = "vertex_indexed"

	// annotationArgVertexBaked identifies the VertexInput struct for baked-transform pipelines.
	// Source: engine/model/assets/vertex_baked.wgsl
	annotationArgVertexBaked AnnotationArg = "vertex_baked"

	// annotationArgSkinIndexed identifies the skinTransform function for indexed-bone pipelines.
	// Include-only; not a struct type. Source: engine/model/assets/skin_indexed.wgsl
	annotationArgSkinIndexed AnnotationArg = "skin_indexed"

	// annotationArgSkinBaked identifies the skinTransform function for baked-transform pipelines.
	// Include-only; not a struct type. Source: engine/model/assets/skin_baked.wgsl
	annotationArgSkinBaked AnnotationArg = "skin_baked"
)

// ── Address space arguments ───────────────────────────────────────────────────
// These specify the WGSL variable address space in @mmd:group annotations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Provider identity arguments ───────────────────────────────────────────────
// These identify which resource provider owns a bind group. Used in @mmd:provider
// annotations and matched by the viewer's draw setup logic to wire the correct
// BindGroupProvider for each group.

const (
	// AnnotationArgMaterialProvider identifies the per-material provider
	// (material/edge uniforms, textures, samplers).
	AnnotationArgMaterialProvider AnnotationArg = "material"

	// AnnotationArgLightProvider identifies the scene light provider.
	AnnotationArgLightProvider AnnotationArg = "light"

	// AnnotationArgMeshProvider identifies the model's mesh provider, which
	// owns the bone transform storage buffer alongside the vertex and index
	// buffers.
	AnnotationArgMeshProvider AnnotationArg = "mesh"
)

// ── Material binding role arguments ───────────────────────────────────────────
// These qualify individual bindings within a material provider group, telling the
// viewer which texture or sampler slot each binding fulfils without relying on
// variable-name string matching.

const (
	// AnnotationArgDiffuseTexture identifies the base color texture binding (uTexture).
	AnnotationArgDiffuseTexture AnnotationArg = "diffuse_texture"

	// AnnotationArgDiffuseSampler identifies the sampler paired with the base color texture.
	AnnotationArgDiffuseSampler AnnotationArg = "diffuse_sampler"

	// AnnotationArgSphereTexture identifies the sphere environment texture binding (uSphereTexture).
	AnnotationArgSphereTexture AnnotationArg = "sphere_texture"

	// AnnotationArgSphereSampler identifies the sampler paired with the sphere texture.
	AnnotationArgSphereSampler AnnotationArg = "sphere_sampler"

	// AnnotationArgToonTexture identifies the toon ramp texture binding (uToonTexture).
	AnnotationArgToonTexture AnnotationArg = "toon_texture"

	// AnnotationArgToonSampler identifies the sampler paired with the toon ramp.
	AnnotationArgToonSampler AnnotationArg = "toon_sampler"
)

// validIncludeKeys lists all AnnotationArg values that are accepted in
// @mmd:include annotations. Each entry must have a corresponding registryEntry
// in the PreProcessor's sourceRegistry.
var validIncludeKeys = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLight,
	AnnotationArgMaterial,
	AnnotationArgEdge,
	annotationArgVertexIndexed,
	annotationArgVertexBaked,
	annotationArgSkinIndexed,
	annotationArgSkinBaked,
}

// validStructTypes lists the AnnotationArg values accepted as struct type
// arguments in @mmd:group annotations. Function includes are excluded since
// they have no WGSL type name to declare.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLight,
	AnnotationArgMaterial,
	AnnotationArgEdge,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @mmd:group annotations.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// validProviderIdentities lists all AnnotationArg values that are accepted as
// provider identity arguments in @mmd:provider annotations.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLightProvider,
	AnnotationArgMaterialProvider,
	AnnotationArgMeshProvider,
}

// validBindingRoles lists all AnnotationArg values that are accepted as binding
// role qualifiers in @mmd:provider annotations.
var validBindingRoles = []AnnotationArg{
	AnnotationArgDiffuseTexture,
	AnnotationArgDiffuseSampler,
	AnnotationArgSphereTexture,
	AnnotationArgSphereSampler,
	AnnotationArgToonTexture,
	AnnotationArgToonSampler,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @mmd: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @mmd annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @mmd include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validIncludeKeys, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown source key %q in @mmd include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @mmd group annotation requires exactly five arguments (group number, binding number, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @mmd group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @mmd group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @mmd group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @mmd group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @mmd provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @mmd provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @mmd provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @mmd provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @mmd annotation type %q", lineNum, args[0])
	}
}
