package parallel

// DefaultBandHeight is the number of pixel rows per work item.
const DefaultBandHeight = 16

// Band is a half-open range of pixel rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into consecutive bands of at most
// bandHeight rows. A non-positive bandHeight uses DefaultBandHeight.
func SplitRows(height, bandHeight int) []Band {
	if height <= 0 {
		return nil
	}
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}
	bands := make([]Band, 0, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{Y0: y, Y1: min(y+bandHeight, height)})
	}
	return bands
}

// ForEachBand runs fn once per band of height rows and waits for all of
// them. Bands run concurrently; fn must only touch rows inside its band.
func (p *WorkerPool) ForEachBand(height, bandHeight int, fn func(Band)) {
	bands := SplitRows(height, bandHeight)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
