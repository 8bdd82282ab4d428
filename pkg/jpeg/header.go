// Package jpeg implements a baseline (SOF0) JFIF codec: enough of ITU
// T.81 to parse a cover image down to its quantised DCT coefficients
// and re-serialise a (possibly modified) coefficient sequence back
// into a valid JPEG byte stream. It does not perform the DCT/IDCT
// transform and does not decode to pixels.
package jpeg

import "jsteg/pkg/jpegerr"

// Marker identifies a JPEG segment by its second byte (the byte after
// the 0xFF marker prefix).
type Marker byte

const (
	MarkerSOI  Marker = 0xD8
	MarkerAPP0 Marker = 0xE0
	MarkerDQT  Marker = 0xDB
	MarkerSOF0 Marker = 0xC0
	MarkerSOF2 Marker = 0xC2 // progressive; recognised only to reject it
	MarkerDHT  Marker = 0xC4
	MarkerSOS  Marker = 0xDA
	MarkerDRI  Marker = 0xDD
	MarkerEOI  Marker = 0xD9
)

// hasLengthField reports whether segLen bytes follow the marker byte,
// per spec.md §4.3: every recognised segment except SOI/EOI/TEM/RSTn
// carries a length field.
func hasLengthField(m Marker) bool {
	switch m {
	case MarkerSOI, MarkerEOI:
		return false
	}
	if m >= 0xD0 && m <= 0xD7 { // RSTn
		return false
	}
	if m == 0x01 { // TEM
		return false
	}
	return true
}

// Component is one colour component of the frame (SOF0) and scan (SOS)
// headers, merged into a single record once both have been read.
type Component struct {
	Identifier       int
	QuantTableNumber int
	HSamp, VSamp     int
	DCHuffID         int
	ACHuffID         int
}

// QuantTable is one DQT table: 64 entries in zig-zag order, either
// 8-bit or 16-bit precision.
type QuantTable struct {
	DestID    int
	Precision int // 8 or 16
	Values    [64]uint16
	Set       bool
}

// Header is the aggregate built by the marker scanner while walking a
// JPEG container. It becomes read-only to the rest of the pipeline
// once SOS has been observed.
type Header struct {
	Precision  int
	Width      int
	Height     int
	Components []Component

	DCTables [2]*HuffmanTable
	ACTables [2]*HuffmanTable

	QuantTables [4]QuantTable

	RestartInterval int

	// APP0Payload is the verbatim JFIF APP0 body (absent if the cover
	// did not carry one), preserved for round-trip emission.
	APP0Payload []byte

	// ExtraAPPSegments holds any other recognised-but-opaque APPn
	// segments (e.g. APP1/EXIF) in the order they were encountered,
	// each as (marker byte, verbatim segment payload after the length
	// field). The container writer re-emits them verbatim right after
	// APP0. See SPEC_FULL.md §12.
	ExtraAPPSegments []ExtraSegment

	StartOfSelection     int
	EndOfSelection       int
	SuccessiveApproxHigh int
	SuccessiveApproxLow  int

	// ZeroBased records that at least one component ID was 0 on input,
	// so the +1 remap in spec.md §3 was applied.
	ZeroBased bool

	sosSeen bool
}

// ExtraSegment is an opaque, verbatim-preserved APPn segment.
type ExtraSegment struct {
	Marker  Marker
	Payload []byte
}

func newHeader() *Header {
	return &Header{
		StartOfSelection: -1,
		EndOfSelection:   -1,
	}
}

// validateSOF checks the sampling-factor invariant of spec.md §3: when
// three components are present, the two chroma components must have
// HSamp=VSamp=1 and the luma component's factors are each in {1,2}.
func validateSOF(h *Header) error {
	if h.Precision != 8 {
		return jpegerr.New(jpegerr.UnsupportedFeature, "SOF0 precision %d, only 8 supported", h.Precision)
	}
	if h.Width == 0 || h.Height == 0 {
		return jpegerr.New(jpegerr.InvalidContainer, "SOF0 dimensions must be non-zero (got %dx%d)", h.Width, h.Height)
	}
	switch len(h.Components) {
	case 1:
		return nil
	case 3:
	default:
		return jpegerr.New(jpegerr.UnsupportedFeature, "SOF0 component count %d, only 1 or 3 supported", len(h.Components))
	}

	seen := map[int]bool{}
	for i, c := range h.Components {
		if seen[c.Identifier] {
			return jpegerr.New(jpegerr.InvalidContainer, "duplicate component id %d", c.Identifier)
		}
		seen[c.Identifier] = true

		if i == 0 {
			if c.HSamp != 1 && c.HSamp != 2 {
				return jpegerr.New(jpegerr.InvalidContainer, "luma hSamp %d out of {1,2}", c.HSamp)
			}
			if c.VSamp != 1 && c.VSamp != 2 {
				return jpegerr.New(jpegerr.InvalidContainer, "luma vSamp %d out of {1,2}", c.VSamp)
			}
		} else {
			if c.HSamp != 1 || c.VSamp != 1 {
				return jpegerr.New(jpegerr.InvalidContainer, "chroma component %d must have hSamp=vSamp=1, got %d/%d", c.Identifier, c.HSamp, c.VSamp)
			}
		}
	}
	return nil
}

// LumaComponent returns the first (luma) component.
func (h *Header) LumaComponent() Component { return h.Components[0] }

// HasChroma reports whether the frame carries Cb/Cr components.
func (h *Header) HasChroma() bool { return len(h.Components) == 3 }
