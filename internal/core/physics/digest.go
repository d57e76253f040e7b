package physics

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"
)

// Digest hashes the state of every registered body in registration order.
// Identical scenes stepped identically produce identical digests.
func (w *World) Digest() uint64 {
	h := xxhash.New()
	var buf [25]byte
	for _, rb := range w.bodies {
		pos := rb.anchor.WorldPosition()
		binary.LittleEndian.PutUint32(buf[0:], math32.Float32bits(pos.X))
		binary.LittleEndian.PutUint32(buf[4:], math32.Float32bits(pos.Y))
		binary.LittleEndian.PutUint32(buf[8:], math32.Float32bits(rb.anchor.WorldRotation()))
		binary.LittleEndian.PutUint32(buf[12:], math32.Float32bits(rb.velocity.X))
		binary.LittleEndian.PutUint32(buf[16:], math32.Float32bits(rb.velocity.Y))
		binary.LittleEndian.PutUint32(buf[20:], math32.Float32bits(rb.angularVelocity))
		buf[24] = 0
		if rb.asleep {
			buf[24] = 1
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
