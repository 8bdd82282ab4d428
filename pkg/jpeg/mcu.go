package jpeg

// Channel is one 8x8 block's quantised coefficients in zig-zag order:
// one DC term and 63 AC terms.
type Channel struct {
	DC int32
	AC [63]int32
}

// ChannelClass distinguishes luma blocks from chroma blocks within an
// MCU, per the walker order of spec.md §4.8.
type ChannelClass int

const (
	ChannelY ChannelClass = iota
	ChannelC
)

// MCU is one Minimum Coded Unit: up to 4 luma blocks (indexed by the
// luma sampling factors) and up to 2 chroma blocks (Cb then Cr).
type MCU struct {
	Y  []Channel // length = hSamp*vSamp of the luma component
	Cb *Channel  // nil for single-component (grayscale) images
	Cr *Channel
}

// Geometry describes the MCU grid derived from a Header, per spec.md
// §4.6.
type Geometry struct {
	BlocksWide, BlocksHigh int // rounded up to a multiple of the luma sampling factor
	MCUsWide, MCUsHigh     int
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func roundUpToMultiple(v, m int) int {
	if v%m != 0 {
		v += m - v%m
	}
	return v
}

// ComputeGeometry derives the MCU grid dimensions from a validated
// Header.
func ComputeGeometry(h *Header) Geometry {
	luma := h.LumaComponent()

	bWidth := ceilDiv(h.Width, 8)
	bHeight := ceilDiv(h.Height, 8)

	if luma.HSamp == 2 {
		bWidth = roundUpToMultiple(bWidth, 2)
	}
	if luma.VSamp == 2 {
		bHeight = roundUpToMultiple(bHeight, 2)
	}

	return Geometry{
		BlocksWide: bWidth,
		BlocksHigh: bHeight,
		MCUsWide:   bWidth / luma.HSamp,
		MCUsHigh:   bHeight / luma.VSamp,
	}
}

// TotalMCUs is the total MCU count implied by g.
func (g Geometry) TotalMCUs() int { return g.MCUsWide * g.MCUsHigh }
