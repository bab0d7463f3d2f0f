package gpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func readRecord(buf []byte, i int) (float32, float32) {
	off := i * RecordSize
	x := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))
	return x, y
}

func TestInstanceBufferFirstUploadSizedToCount(t *testing.T) {
	fa := newFakeAdapter()
	b := NewInstanceBuffer(fa, "test")

	if err := b.Upload(points{0, 0, 0.5, -0.5, 1, 1}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if b.Capacity() != 3 || b.Count() != 3 {
		t.Errorf("capacity=%d count=%d, want 3/3", b.Capacity(), b.Count())
	}
	if got := len(fa.buffers[b.ID()]); got != 3*RecordSize {
		t.Errorf("device buffer = %d bytes, want %d", got, 3*RecordSize)
	}
	x, y := readRecord(fa.buffers[b.ID()], 1)
	if x != 0.5 || y != -0.5 {
		t.Errorf("record 1 = (%v, %v), want (0.5, -0.5)", x, y)
	}
}

func TestInstanceBufferReuseAndGrowth(t *testing.T) {
	tests := []struct {
		name      string
		sizes     []int
		wantAlloc int
		wantCap   int
	}{
		{"same size", []int{100, 100, 100}, 1, 100},
		{"shrink reuses", []int{100, 10, 50}, 1, 100},
		{"grow reallocates exactly", []int{10, 11}, 2, 11},
		{"grow then shrink", []int{10, 40, 20}, 2, 40},
		{"empty first", []int{0, 1}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := newFakeAdapter()
			b := NewInstanceBuffer(fa, "test")
			for _, n := range tt.sizes {
				if err := b.Upload(make(points, 2*n)); err != nil {
					t.Fatalf("Upload(%d): %v", n, err)
				}
				if b.Count() != n {
					t.Errorf("Count = %d, want %d", b.Count(), n)
				}
			}
			if b.Allocations() != tt.wantAlloc {
				t.Errorf("Allocations = %d, want %d", b.Allocations(), tt.wantAlloc)
			}
			if b.Capacity() != tt.wantCap {
				t.Errorf("Capacity = %d, want %d", b.Capacity(), tt.wantCap)
			}
			if live, _, _ := fa.live(); live != 1 {
				t.Errorf("live buffers = %d, want 1 (old buffer must be destroyed)", live)
			}
		})
	}
}

func TestInstanceBufferNonFiniteWrittenOffscreen(t *testing.T) {
	fa := newFakeAdapter()
	b := NewInstanceBuffer(fa, "test")
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if err := b.Upload(points{0.25, 0.75, nan, 0, 0, inf}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if b.Count() != 3 {
		t.Fatalf("Count = %d, want 3", b.Count())
	}
	buf := fa.buffers[b.ID()]
	for i, want := range [][2]float32{{0.25, 0.75}, {offscreen, offscreen}, {offscreen, offscreen}} {
		x, y := readRecord(buf, i)
		if x != want[0] || y != want[1] {
			t.Errorf("record %d = (%v, %v), want %v", i, x, y, want)
		}
	}
}

func TestInstanceBufferAllocationFailure(t *testing.T) {
	fa := newFakeAdapter()
	b := NewInstanceBuffer(fa, "test")
	if err := b.Upload(make(points, 8)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	prev := b.ID()

	fa.failBuffer = true
	err := b.Upload(make(points, 100))
	if !errors.Is(err, ErrBufferAlloc) {
		t.Fatalf("err = %v, want ErrBufferAlloc", err)
	}
	if b.ID() != prev || b.Count() != 4 {
		t.Errorf("failed upload changed state: id=%d count=%d", b.ID(), b.Count())
	}
}

func TestInstanceBufferWriteFailure(t *testing.T) {
	fa := newFakeAdapter()
	b := NewInstanceBuffer(fa, "test")
	if err := b.Upload(make(points, 8)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	fa.failWrite = true
	err := b.Upload(make(points, 4))
	if !errors.Is(err, ErrBufferWrite) || !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want ErrBufferWrite wrapping the device error", err)
	}
	if b.Count() != 4 {
		t.Errorf("Count() = %d after failed write, want 4", b.Count())
	}
}

func TestInstanceBufferTooLarge(t *testing.T) {
	fa := newFakeAdapter()
	fa.maxBuffer = 10 * RecordSize
	b := NewInstanceBuffer(fa, "test")

	err := b.Upload(make(points, 2*11))
	if !errors.Is(err, ErrBufferTooLarge) {
		t.Fatalf("err = %v, want ErrBufferTooLarge", err)
	}
	if fa.created != 0 {
		t.Errorf("created %d buffers, want 0", fa.created)
	}
}

func TestInstanceBufferDestroy(t *testing.T) {
	fa := newFakeAdapter()
	b := NewInstanceBuffer(fa, "test")
	if err := b.Upload(make(points, 4)); err != nil {
		t.Fatal(err)
	}
	b.Destroy()
	b.Destroy()
	if live, _, _ := fa.live(); live != 0 {
		t.Errorf("live buffers = %d, want 0", live)
	}
	if b.Capacity() != 0 || b.Count() != 0 {
		t.Errorf("capacity=%d count=%d after Destroy", b.Capacity(), b.Count())
	}
}

func TestPackRecordsReusesStaging(t *testing.T) {
	staging := make([]byte, 0, 64)
	out := packRecords(points{1, 2, 3, 4}, staging)
	if len(out) != 16 {
		t.Fatalf("len = %d, want 16", len(out))
	}
	if &out[0] != &staging[:1][0] {
		t.Error("staging slice was not reused")
	}
}

func BenchmarkInstanceBufferUpload1M(b *testing.B) {
	const n = 1_000_000
	src := make(points, 2*n)
	for i := range src {
		src[i] = float32(i%2000)/1000 - 1
	}
	fa := newFakeAdapter()
	buf := NewInstanceBuffer(fa, "bench")

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if err := buf.Upload(src); err != nil {
			b.Fatal(err)
		}
	}
}
