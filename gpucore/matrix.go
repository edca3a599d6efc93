package gpucore

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 float32 matrix in column-major order, the layout expected by
// mat4x4<f32> uniforms:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
type Mat4 [16]float32

// Mat4Size is the byte size of an encoded Mat4.
const Mat4Size = 64

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 returns a translation matrix.
func Translate4(x, y, z float32) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale4 returns a scaling matrix.
func Scale4(x, y, z float32) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Ortho returns an orthographic projection mapping the box
// [left, right] x [bottom, top] x [near, far] to clip space
// [-1, 1] x [-1, 1] x [0, 1]. Degenerate extents map to a zero scale on
// that axis instead of dividing by zero.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4{}
	if w := right - left; w != 0 {
		m[0] = 2 / w
		m[12] = -(right + left) / w
	}
	if h := top - bottom; h != 0 {
		m[5] = 2 / h
		m[13] = -(top + bottom) / h
	}
	if d := far - near; d != 0 {
		m[10] = 1 / d
		m[14] = -near / d
	}
	m[15] = 1
	return m
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to the point (x, y, 0, 1) and returns the
// resulting x and y after the perspective divide.
func (m Mat4) TransformPoint(x, y float32) (float32, float32) {
	tx := m[0]*x + m[4]*y + m[12]
	ty := m[1]*x + m[5]*y + m[13]
	tw := m[3]*x + m[7]*y + m[15]
	if tw != 0 && tw != 1 {
		tx /= tw
		ty /= tw
	}
	return tx, ty
}

// IsIdentity reports whether m is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity4()
}

// PutBytes writes m to buf in little-endian order. buf must hold at least
// Mat4Size bytes.
func (m Mat4) PutBytes(buf []byte) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

// Bytes returns m encoded in little-endian order.
func (m Mat4) Bytes() []byte {
	buf := make([]byte, Mat4Size)
	m.PutBytes(buf)
	return buf
}
