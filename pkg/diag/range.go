package diag

// Ranging is the half-open range [From, To) of byte offsets into a source.
type Ranging struct {
	From int
	To   int
}

// Ranger is implemented by values associated with a range of the source, such
// as *Error and structs embedding Ranging.
type Ranger interface {
	Range() Ranging
}

// Range returns r itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns an empty Ranging at p.
func PointRanging(p int) Ranging { return Ranging{p, p} }
