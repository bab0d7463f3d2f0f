package gpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/scatter/internal/gpucore"
)

// RecordSize is the byte size of one point record: x and y as float32.
const RecordSize = 8

// offscreen is written for points with a non-finite coordinate. It lies far
// outside clip space, so the point's quad is clipped by the rasterizer
// while the record count still matches the point count.
const offscreen float32 = 1e6

// PointSource is a read-only view over mapped point coordinates.
type PointSource interface {
	Len() int
	XY(i int) (x, y float32)
}

// InstanceBuffer owns the device buffer holding one record per point.
//
// The buffer is sized to the point count on first upload. Later uploads
// reuse it when the new count fits the current capacity and reallocate to
// exactly the new count otherwise.
//
// InstanceBuffer is not safe for concurrent use; it belongs to the render
// thread of a single plot.
type InstanceBuffer struct {
	adapter gpucore.Adapter
	label   string

	id       gpucore.BufferID
	capacity int // in records
	count    int

	// staging is reused across uploads when its capacity suffices.
	staging []byte

	allocations int
}

// NewInstanceBuffer creates an empty instance buffer. No device memory is
// allocated until the first Upload.
func NewInstanceBuffer(adapter gpucore.Adapter, label string) *InstanceBuffer {
	return &InstanceBuffer{adapter: adapter, label: label}
}

// Upload writes every point of src to the device, growing the buffer if
// needed. Allocation failures wrap ErrBufferAlloc or ErrBufferTooLarge and
// leave the previous contents in place. A failed write wraps ErrBufferWrite
// and leaves Count unchanged.
func (b *InstanceBuffer) Upload(src PointSource) error {
	n := src.Len()
	if b.id == gpucore.InvalidID || n > b.capacity {
		if err := b.allocate(max(n, 1)); err != nil {
			return err
		}
	}

	b.staging = packRecords(src, b.staging)
	if len(b.staging) > 0 {
		if err := b.adapter.WriteBuffer(b.id, 0, b.staging); err != nil {
			return fmt.Errorf("%w: %d records: %w", ErrBufferWrite, n, err)
		}
	}
	b.count = n
	return nil
}

func (b *InstanceBuffer) allocate(records int) error {
	size := uint64(records) * RecordSize
	if limit := b.adapter.MaxBufferSize(); limit > 0 && size > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrBufferTooLarge, size, limit)
	}

	id, err := b.adapter.CreateBuffer(b.label, size, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("%w: %d bytes: %w", ErrBufferAlloc, size, err)
	}

	if b.id != gpucore.InvalidID {
		b.adapter.DestroyBuffer(b.id)
	}
	slogger().Debug("gpu: instance buffer allocated",
		slog.String("label", b.label),
		slog.Int("records", records),
		slog.Uint64("bytes", size),
		slog.Int("previous_records", b.capacity),
	)

	b.id = id
	b.capacity = records
	b.allocations++
	return nil
}

// packRecords encodes src into staging, growing it only when its capacity
// is too small. The returned slice holds exactly src.Len() records.
func packRecords(src PointSource, staging []byte) []byte {
	n := src.Len()
	size := n * RecordSize
	if cap(staging) >= size {
		staging = staging[:size]
	} else {
		staging = make([]byte, size)
	}

	for i := range n {
		x, y := src.XY(i)
		if !finite32(x) || !finite32(y) {
			x, y = offscreen, offscreen
		}
		off := i * RecordSize
		binary.LittleEndian.PutUint32(staging[off:], math.Float32bits(x))
		binary.LittleEndian.PutUint32(staging[off+4:], math.Float32bits(y))
	}
	return staging
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ID returns the current device buffer, or gpucore.InvalidID before the
// first upload.
func (b *InstanceBuffer) ID() gpucore.BufferID { return b.id }

// Count returns the number of records written by the last upload.
func (b *InstanceBuffer) Count() int { return b.count }

// Capacity returns the number of records the device buffer can hold.
func (b *InstanceBuffer) Capacity() int { return b.capacity }

// Allocations returns how many device buffers have been created.
func (b *InstanceBuffer) Allocations() int { return b.allocations }

// Destroy releases the device buffer. The InstanceBuffer can be reused;
// the next Upload allocates again.
func (b *InstanceBuffer) Destroy() {
	if b.id != gpucore.InvalidID {
		b.adapter.DestroyBuffer(b.id)
	}
	b.id = gpucore.InvalidID
	b.capacity = 0
	b.count = 0
}
