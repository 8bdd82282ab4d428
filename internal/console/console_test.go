package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPrinter(verbose bool) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	p := New(verbose)
	p.out = &buf
	return p, &buf
}

func TestPrinterLevelsWriteMarkerAndMessage(t *testing.T) {
	p, buf := newTestPrinter(false)

	p.Infof("cover %s has %d bits", "x.jpg", 512)
	require.Contains(t, buf.String(), "[*]")
	require.Contains(t, buf.String(), "cover x.jpg has 512 bits")
}

func TestDebugfSuppressedUnlessVerbose(t *testing.T) {
	p, buf := newTestPrinter(false)
	p.Debugf("hidden detail")
	require.Empty(t, buf.String())

	p2, buf2 := newTestPrinter(true)
	p2.Debugf("shown detail")
	require.Contains(t, buf2.String(), "shown detail")
}
