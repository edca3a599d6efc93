package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/gplot/gpucore"
)

// uniformKind is the shape of a uniform struct member.
type uniformKind uint8

const (
	kindUnsupported uniformKind = iota
	kindMat4
	kindVec4
)

// uniformField locates one member of the uniform block.
type uniformField struct {
	offset uint32
	kind   uniformKind
}

// shaderLayout is what a pipeline needs to know about a WGSL program.
type shaderLayout struct {
	vertexEntry   string
	fragmentEntry string

	// blockSize is the byte span of the uniform struct.
	blockSize uint32
	fields    map[string]uniformField
}

// reflectShader parses WGSL source and extracts the entry points and the
// member layout of the uniform struct bound at group 0, binding 0.
func reflectShader(source string) (*shaderLayout, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: parse shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: lower shader: %w", err)
	}

	layout := &shaderLayout{fields: make(map[string]uniformField)}
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		switch ep.Stage {
		case ir.StageVertex:
			if layout.vertexEntry == "" {
				layout.vertexEntry = ep.Name
			}
		case ir.StageFragment:
			if layout.fragmentEntry == "" {
				layout.fragmentEntry = ep.Name
			}
		}
	}
	if layout.vertexEntry == "" || layout.fragmentEntry == "" {
		return nil, ErrEntryPoint
	}

	block, ok := uniformBlock(module)
	if !ok {
		return nil, ErrUniformBlock
	}
	for _, m := range block.Members {
		layout.fields[m.Name] = uniformField{
			offset: m.Offset,
			kind:   kindOf(module, m.Type),
		}
	}
	layout.blockSize = block.Span
	if layout.blockSize == 0 && len(block.Members) > 0 {
		last := block.Members[len(block.Members)-1]
		layout.blockSize = last.Offset + kindSize(kindOf(module, last.Type))
	}
	return layout, nil
}

// uniformBlock finds the struct type of the uniform variable at @group(0)
// @binding(0).
func uniformBlock(module *ir.Module) (ir.StructType, bool) {
	for _, gv := range module.GlobalVariables {
		if gv.Space != ir.SpaceUniform || gv.Binding == nil {
			continue
		}
		if gv.Binding.Group != 0 || gv.Binding.Binding != 0 {
			continue
		}
		if int(gv.Type) >= len(module.Types) {
			return ir.StructType{}, false
		}
		st, ok := module.Types[gv.Type].Inner.(ir.StructType)
		return st, ok
	}
	return ir.StructType{}, false
}

// kindOf classifies a member type. Only f32 mat4x4 and vec4 are settable.
func kindOf(module *ir.Module, h ir.TypeHandle) uniformKind {
	if int(h) >= len(module.Types) {
		return kindUnsupported
	}
	switch t := module.Types[h].Inner.(type) {
	case ir.MatrixType:
		if t.Columns == ir.Vec4 && t.Rows == ir.Vec4 && isF32(t.Scalar) {
			return kindMat4
		}
	case ir.VectorType:
		if t.Size == ir.Vec4 && isF32(t.Scalar) {
			return kindVec4
		}
	}
	return kindUnsupported
}

func isF32(s ir.ScalarType) bool {
	return s.Kind == ir.ScalarFloat && s.Width == 4
}

func kindSize(k uniformKind) uint32 {
	switch k {
	case kindMat4:
		return gpucore.Mat4Size
	case kindVec4:
		return 16
	default:
		return 0
	}
}

func (k uniformKind) String() string {
	switch k {
	case kindMat4:
		return "mat4x4<f32>"
	case kindVec4:
		return "vec4<f32>"
	default:
		return "unsupported"
	}
}
