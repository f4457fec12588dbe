package date

// Range is a range of dates, both boundaries included. A zero To leaves the
// range open ended.
type Range struct{ From, To Date }

// Since returns the open ended range starting on from.
func Since(from Date) Range { return Range{From: from} }

// Contains reports whether d is within the range.
func (r Range) Contains(d Date) bool {
	if d.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !d.After(r.To)
}
