// Package jsteg implements the JSteg embedding/extraction engine: a
// deterministic walk over a decoded image's AC coefficients that
// hides or recovers one payload bit per eligible coefficient.
package jsteg

import (
	"jsteg/pkg/jpeg"
	"jsteg/pkg/jpegerr"
)

// Locator names one AC coefficient's position in the MCU sequence, as
// returned by the walker and used by the caller to read or mutate the
// coefficient it names.
type Locator struct {
	MCUIndex     int
	Class        jpeg.ChannelClass
	ChannelIndex int // index into mcu.Y for ChannelY; 0=Cb,1=Cr for ChannelC
	ACIndex      int // 0..62
}

// Walker is a stateful cursor over the AC coefficients of every MCU in
// an image, in the lexicographic order of spec.md §4.8: (mcuIndex,
// channelClass, channelIndex, acIndex). It borrows the MCU sequence
// read-only; mutation happens through the caller indexing back in
// with the Locator a call returned.
type Walker struct {
	mcus      []jpeg.MCU
	hasChroma bool

	mcuIndex     int
	class        jpeg.ChannelClass
	channelIndex int
	acIndex      int
}

// NewWalker returns a cursor positioned before the first coefficient
// of mcus. hasChroma must match whether each MCU carries Cb/Cr blocks.
func NewWalker(mcus []jpeg.MCU, hasChroma bool) *Walker {
	return &Walker{mcus: mcus, hasChroma: hasChroma}
}

// advance moves the cursor to the position after the one it is
// currently on, without reading a value.
func (w *Walker) advance() {
	w.acIndex++
	if w.acIndex < 63 {
		return
	}
	w.acIndex = 0
	w.channelIndex++

	switch w.class {
	case jpeg.ChannelY:
		if w.channelIndex < len(w.mcus[w.mcuIndex].Y) {
			return
		}
		w.channelIndex = 0
		if w.hasChroma {
			w.class = jpeg.ChannelC
			return
		}
		fallthrough
	case jpeg.ChannelC:
		if w.hasChroma && w.channelIndex < 2 {
			return
		}
		w.channelIndex = 0
		w.class = jpeg.ChannelY
		w.mcuIndex++
	}
}

// value reads the coefficient at the cursor's current position.
func (w *Walker) value() int32 {
	mcu := &w.mcus[w.mcuIndex]
	if w.class == jpeg.ChannelY {
		return mcu.Y[w.channelIndex].AC[w.acIndex]
	}
	if w.channelIndex == 0 {
		return mcu.Cb.AC[w.acIndex]
	}
	return mcu.Cr.AC[w.acIndex]
}

// locator returns the Locator for the cursor's current position.
func (w *Walker) locator() Locator {
	return Locator{
		MCUIndex:     w.mcuIndex,
		Class:        w.class,
		ChannelIndex: w.channelIndex,
		ACIndex:      w.acIndex,
	}
}

// NextCoefficient returns the current coefficient's locator and value,
// then advances the cursor. Running off the end of the MCU sequence is
// fatal.
func (w *Walker) NextCoefficient() (Locator, int32, error) {
	if w.mcuIndex >= len(w.mcus) {
		return Locator{}, 0, jpegerr.New(jpegerr.CapacityExceeded, "coefficient walker ran past the end of the MCU sequence")
	}
	loc := w.locator()
	v := w.value()
	w.advance()
	return loc, v, nil
}

// NextUsableCoefficient repeatedly calls NextCoefficient until the
// returned value is neither 0 nor 1 (the values JSteg must never
// disturb, per spec.md §4.8/§4.9 — note this is 0/1 exactly, not ±1:
// a coefficient of -1 is eligible, matching the original source's
// `coefficient_signed != 0 and coefficient_signed != 1` check).
func (w *Walker) NextUsableCoefficient() (Locator, int32, error) {
	for {
		loc, v, err := w.NextCoefficient()
		if err != nil {
			return loc, v, err
		}
		if v != 0 && v != 1 {
			return loc, v, nil
		}
	}
}

// Set writes v back into the MCU sequence at loc.
func Set(mcus []jpeg.MCU, loc Locator, v int32) {
	mcu := &mcus[loc.MCUIndex]
	if loc.Class == jpeg.ChannelY {
		mcu.Y[loc.ChannelIndex].AC[loc.ACIndex] = v
		return
	}
	if loc.ChannelIndex == 0 {
		mcu.Cb.AC[loc.ACIndex] = v
		return
	}
	mcu.Cr.AC[loc.ACIndex] = v
}
