package ttf

import "errors"

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(u16(b))
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of font binary data. We use it throughout this
// package to navigate the font's bytes without copying them.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// i16 returns the int16 in b at the relative offset i.
func (b binarySegm) i16(i int) (int16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return i16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Sequential cursor -------------------------------------------------------

// cursor is a sequential bounds-checked reader over a byte segment. The
// glyf decoder is a small state machine over one of these; every read
// advances the position.
type cursor struct {
	b   binarySegm
	pos int
}

func (c *cursor) skip(n int) error {
	if n < 0 || c.pos+n > len(c.b) {
		return errBufferBounds
	}
	c.pos += n
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if c.pos+1 > len(c.b) {
		return 0, errBufferBounds
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) i8() (int8, error) {
	v, err := c.u8()
	return int8(v), err
}

func (c *cursor) u16() (uint16, error) {
	if c.pos+2 > len(c.b) {
		return 0, errBufferBounds
	}
	v := u16(c.b[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}
