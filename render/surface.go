package render

import (
	"image"
	"sync"
)

// Surface is the presentation target of a frame. The frame holds exclusive
// write access to the buffer from AcquireWrite until ReleaseAndPresent
// publishes the finished image.
type Surface interface {
	Size() (w, h int)
	AcquireWrite() []Pixel
	ReleaseAndPresent() error
}

// BufferSurface is a CPU double buffer implementing Surface: frames draw
// into the back buffer and presenting swaps it to the front, where readers
// (the web viewer, snapshot writers) pick it up.
type BufferSurface struct {
	mu     sync.Mutex
	w, h   int
	back   []Pixel
	front  []Pixel
	frames uint64
}

func NewBufferSurface(w, h int) *BufferSurface {
	return &BufferSurface{
		w:     w,
		h:     h,
		back:  make([]Pixel, w*h),
		front: make([]Pixel, w*h),
	}
}

func (s *BufferSurface) Size() (int, int) { return s.w, s.h }

func (s *BufferSurface) AcquireWrite() []Pixel {
	return s.back
}

func (s *BufferSurface) ReleaseAndPresent() error {
	s.mu.Lock()
	s.back, s.front = s.front, s.back
	s.frames++
	s.mu.Unlock()
	return nil
}

// Frames returns the number of presented frames.
func (s *BufferSurface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Snapshot copies the last presented frame into an image.
func (s *BufferSurface) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	s.mu.Lock()
	for i, p := range s.front {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	s.mu.Unlock()
	return img
}
