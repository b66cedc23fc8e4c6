package voronoi

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Packed buffer geometry. Every record is a vec4<f32>: four 4-byte
// components, 16 bytes, the array stride of a uniform or storage array
// of vec4 in WGSL/GLSL std140.
const (
	componentSize    = 4
	recordComponents = 4

	// RecordSize is the byte stride of one packed record.
	RecordSize = componentSize * recordComponents
)

// PackedSize returns the byte size of a packed buffer with the given
// capacity: two blocks of capacity records.
func PackedSize(capacity int) int {
	return 2 * capacity * RecordSize
}

// PackedBuffer is the serialized form of a SeedSet.
//
// Layout (little-endian float32):
//
//	block 0, offset 0:               capacity records, position (x, y, 0, 0)
//	block 1, offset capacity*16:     capacity records, color    (r, g, b, 1)
//
// Slots at or beyond the active count are zero in both blocks.
// A PackedBuffer is immutable once returned by Pack.
type PackedBuffer struct {
	capacity int
	active   int
	data     []byte
}

// Pack serializes set into a zero-initialized buffer with room for
// capacity seeds. It returns ErrSeedOverflow if the set holds more seeds
// than capacity; nothing is written in that case.
//
// Pack is pure: equal inputs produce byte-identical buffers.
func Pack(set SeedSet, capacity int) (*PackedBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	active := set.ActiveCount()
	if active > capacity {
		return nil, fmt.Errorf("%w: %d seeds, capacity %d", ErrSeedOverflow, active, capacity)
	}

	b := &PackedBuffer{
		capacity: capacity,
		active:   active,
		data:     make([]byte, PackedSize(capacity)),
	}
	colors := b.ColorsOffset()
	for i, s := range set.Seeds {
		off := i * RecordSize
		putRecord(b.data[off:], s.Position.X, s.Position.Y, 0, 0)
		putRecord(b.data[colors+off:], s.Color.R, s.Color.G, s.Color.B, 1)
	}

	Logger().Debug("voronoi: packed seeds",
		"active", active, "capacity", capacity, "bytes", len(b.data))
	return b, nil
}

// FromBytes wraps previously packed bytes. The slice is copied.
// len(data) must equal PackedSize(capacity) and active must be in
// [0, capacity].
func FromBytes(data []byte, capacity, active int) (*PackedBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if len(data) != PackedSize(capacity) {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedBuffer, len(data), PackedSize(capacity))
	}
	if active < 0 || active > capacity {
		return nil, fmt.Errorf("%w: %d (capacity %d)", ErrActiveCount, active, capacity)
	}
	return &PackedBuffer{
		capacity: capacity,
		active:   active,
		data:     append([]byte(nil), data...),
	}, nil
}

// Capacity returns the number of slots per block.
func (b *PackedBuffer) Capacity() int {
	return b.capacity
}

// ActiveCount returns the number of populated slots.
func (b *PackedBuffer) ActiveCount() int {
	return b.active
}

// Size returns the total byte size, 2 * Capacity() * RecordSize.
func (b *PackedBuffer) Size() int {
	return len(b.data)
}

// ColorsOffset returns the byte offset at which block 1 (colors) begins.
func (b *PackedBuffer) ColorsOffset() int {
	return b.capacity * RecordSize
}

// Bytes returns the packed bytes. The slice aliases the buffer and must
// not be modified.
func (b *PackedBuffer) Bytes() []byte {
	return b.data
}

// Record returns the four components of record i in the given block
// (0 = positions, 1 = colors).
func (b *PackedBuffer) Record(block, i int) [4]float32 {
	off := block*b.ColorsOffset() + i*RecordSize
	var r [4]float32
	for c := range r {
		bits := binary.LittleEndian.Uint32(b.data[off+c*componentSize:])
		r[c] = math.Float32frombits(bits)
	}
	return r
}

// Position decodes the position stored in slot i.
func (b *PackedBuffer) Position(i int) Vec2 {
	r := b.Record(0, i)
	return Vec2{X: r[0], Y: r[1]}
}

// Color decodes the color stored in slot i.
func (b *PackedBuffer) Color(i int) Color {
	r := b.Record(1, i)
	return Color{R: r[0], G: r[1], B: r[2]}
}

// Unpack decodes the active slots back into a SeedSet.
func (b *PackedBuffer) Unpack() SeedSet {
	seeds := make([]Seed, b.active)
	for i := range seeds {
		seeds[i] = Seed{Position: b.Position(i), Color: b.Color(i)}
	}
	return SeedSet{Capacity: b.capacity, Seeds: seeds}
}

func putRecord(dst []byte, x, y, z, w float32) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(z))
	binary.LittleEndian.PutUint32(dst[12:], math.Float32bits(w))
}
