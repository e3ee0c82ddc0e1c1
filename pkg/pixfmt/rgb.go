package pixfmt

// RGB <-> YUV conversion with limited range ITU-R BT.601 coefficients.
// All arithmetic is integer so conversions are reproducible across platforms.

const rgb2yuvShift = 15

// 15 bit coefficients, scaled by 219/255 (luma) and 224/255 (chroma)
const (
	coefRY = 8414
	coefGY = 16519
	coefBY = 3208
	coefRU = -4865
	coefGU = -9528
	coefBU = 14392
	coefRV = 14392
	coefGV = -12061
	coefBV = -2332
)

// 16 bit coefficients of the inverse matrix
const (
	coefYR = 76309  // 1.164383
	coefVR = 104597 // 1.596027
	coefUG = 25675  // 0.391762
	coefVG = 53279  // 0.812968
	coefUB = 132201 // 2.017232
)

// RGBToY converts one RGB sample of the given depth to limited range luma
func RGBToY(r, g, b int64, depth int) uint16 {
	off := int64(16) << (depth - 8) << rgb2yuvShift
	y := (coefRY*r + coefGY*g + coefBY*b + off + 1<<(rgb2yuvShift-1)) >> rgb2yuvShift
	return clipDepth(y, depth)
}

// RGBToUV converts one RGB sample of the given depth to limited range chroma
func RGBToUV(r, g, b int64, depth int) (u, v uint16) {
	off := int64(128) << (depth - 8) << rgb2yuvShift
	round := int64(1) << (rgb2yuvShift - 1)
	uu := (coefRU*r + coefGU*g + coefBU*b + off + round) >> rgb2yuvShift
	vv := (coefRV*r + coefGV*g + coefBV*b + off + round) >> rgb2yuvShift
	return clipDepth(uu, depth), clipDepth(vv, depth)
}

// YUVToRGB converts one limited range YUV sample of the given depth to RGB
func YUVToRGB(y, u, v int64, depth int) (r, g, b uint16) {
	c := y - int64(16)<<(depth-8)
	d := u - int64(128)<<(depth-8)
	e := v - int64(128)<<(depth-8)
	r = clipDepth((coefYR*c+coefVR*e+1<<15)>>16, depth)
	g = clipDepth((coefYR*c-coefUG*d-coefVG*e+1<<15)>>16, depth)
	b = clipDepth((coefYR*c+coefUB*d+1<<15)>>16, depth)
	return r, g, b
}

func clipDepth(v int64, depth int) uint16 {
	hi := int64(1)<<depth - 1
	switch {
	case v < 0:
		return 0
	case v > hi:
		return uint16(hi)
	}
	return uint16(v)
}
