package metadata

/** @brief A three dimensional offset in texels. */
type Offset struct {
	X int32
	Y int32
	Z int32
}

/** @brief A three dimensional extent in texels. */
type Extent struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

/** @brief A two dimensional rectangle in framebuffer coordinates. */
type Region struct {
	X int32
	Y int32
	W int32
	H int32
}

/** @brief Viewport transformation from NDC into framebuffer coordinates. */
type Viewport struct {
	X      float32
	Y      float32
	W      float32
	H      float32
	Near   float64
	Far    float64
}
