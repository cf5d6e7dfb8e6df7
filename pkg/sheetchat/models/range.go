package models

// Range represents cell coordinate bounds on a sheet.
type Range struct {
	// Sheet is the owning sheet name.
	Sheet string `json:"sheet"`
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by the range.
func (r Range) Rows() int {
	if r.R2 < r.R1 {
		return 0
	}
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns covered by the range.
func (r Range) Cols() int {
	if r.C2 < r.C1 {
		return 0
	}
	return r.C2 - r.C1 + 1
}

// IsZero reports whether the range has no coordinates.
func (r Range) IsZero() bool {
	return r.R1 == 0 && r.C1 == 0 && r.R2 == 0 && r.C2 == 0
}
