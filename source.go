package grid

// Source supplies cell content. Value is called once per visible cell
// per redraw, so it must be side-effect-free and O(1); anything slower
// belongs behind a cache owned by the caller.
type Source interface {
	Value(row, col int) string
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(row, col int) string

// Value implements Source.
func (f SourceFunc) Value(row, col int) string {
	return f(row, col)
}

// SliceSource serves cells from an in-memory row-major [][]string.
// Short rows and out-of-range cells yield the empty string.
type SliceSource [][]string

// Value implements Source.
func (s SliceSource) Value(row, col int) string {
	if row < 0 || row >= len(s) {
		return ""
	}
	r := s[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// columnName returns a spreadsheet-style column label: A..Z, AA..AZ, …
func columnName(col int) string {
	var buf [8]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}
