package render

// Pixel is one RGBA value of the CPU framebuffer. The buffer is row major,
// row 0 at the top of the screen.
type Pixel struct {
	R, G, B, A uint8
}

var (
	Black = Pixel{0, 0, 0, 255}
	White = Pixel{255, 255, 255, 255}
)

// RGBA implements image/color.Color so pixels plug straight into the
// standard image encoders.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	a = uint32(p.A) * 0x101
	return
}
