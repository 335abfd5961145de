// pre_processor.go implements the WGSL shader pre-processor. It scans shader
// source code for @mmd: annotations, replaces them with generated WGSL
// declarations or injected source, and collects a declarations list that the
// viewer uses to semantically wire GPU resources to bind groups without manual
// string lookups.
//
// The pre-processor maintains two registries:
//   - sourceRegistry: maps AnnotationArg keys to embedded WGSL sources and their
//     resolved type names. Used by @mmd:include (to inject the source) and
//     @mmd:group (to resolve the WGSL type name in the generated declaration).
//     Struct sources come from the GPU type packages; the skinTransform function
//     variants come from the model package and carry no type name.
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/mmd-go/engine/camera"
	"github.com/Carmen-Shannon/mmd-go/engine/light"
	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/material"
)

// registryEntry pairs a WGSL source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
// Function includes carry an empty Type.
type registryEntry struct {
	// Source is the raw WGSL text injected by @mmd:include.
	Source string

	// Type is the WGSL type name emitted in @mmd:group declarations (e.g. "CameraUniform").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// sourceRegistry maps include/type argument keys to their embedded WGSL source and type name.
	sourceRegistry map[AnnotationArg]registryEntry

	// addressSpaceRegistry maps address space argument keys to WGSL var<> syntax strings.
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates annotations of type AnnotationTypeBindingGroup and
	// AnnotationTypeProvider during a Process call. Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @mmd: annotations,
// replacing them with generated declarations or injected sources while collecting
// a declarations list for downstream resource wiring.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it by replacing
	// @mmd: annotations with their corresponding WGSL output. @mmd:include
	// annotations are replaced with embedded source text. @mmd:group annotations
	// are replaced with generated @group/@binding variable declarations.
	// @mmd:provider annotations produce no WGSL output but are recorded in the
	// declarations list.
	//
	// The declarations list is reset at the start of each call and can be
	// retrieved via Declarations() after Process returns.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown key
	Process(source string) (string, error)

	// Declarations returns the list of AnnotationTypeBindingGroup and
	// AnnotationTypeProvider annotations collected during the most recent call to
	// Process, in source-order. Returns nil if Process has not been called.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with all registered WGSL sources and
// address space mappings pre-populated.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		sourceRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:        {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLight:         {Source: light.GPULightUniformSource, Type: "LightUniform"},
			AnnotationArgMaterial:      {Source: material.GPUMaterialUniformSource, Type: "MaterialUniform"},
			AnnotationArgEdge:          {Source: material.GPUEdgeUniformSource, Type: "EdgeUniform"},
			annotationArgVertexIndexed: {Source: model.GPUVertexIndexedSource, Type: "VertexInput"},
			annotationArgVertexBaked:   {Source: model.GPUVertexBakedSource, Type: "VertexInput"},
			annotationArgSkinIndexed:   {Source: model.GPUSkinIndexedSource},
			annotationArgSkinBaked:     {Source: model.GPUSkinBakedSource},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.sourceRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @mmd:include argument %q", i+1, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			entry := p.sourceRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
