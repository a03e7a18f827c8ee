// Package world provides the dense 2D tile grid the board generator works on.
// These are engine-level constructs with no knowledge of how a board is laid out.
package world

// Field is the tag stored in every grid cell.
type Field int

// Field values. The wall variants name the sides that face floor.
const (
	Empty Field = iota
	Floor
	Wall

	TopWall
	RightWall
	BottomWall
	LeftWall

	TopRightWall
	TopBottomWall
	TopLeftWall
	RightBottomWall
	RightLeftWall
	BottomLeftWall

	TopRightBottomWall
	TopRightLeftWall
	TopBottomLeftWall
	RightBottomLeftWall

	FullWall
)

var fieldNames = [...]string{
	Empty:               "Empty",
	Floor:               "Floor",
	Wall:                "Wall",
	TopWall:             "TopWall",
	RightWall:           "RightWall",
	BottomWall:          "BottomWall",
	LeftWall:            "LeftWall",
	TopRightWall:        "TopRightWall",
	TopBottomWall:       "TopBottomWall",
	TopLeftWall:         "TopLeftWall",
	RightBottomWall:     "RightBottomWall",
	RightLeftWall:       "RightLeftWall",
	BottomLeftWall:      "BottomLeftWall",
	TopRightBottomWall:  "TopRightBottomWall",
	TopRightLeftWall:    "TopRightLeftWall",
	TopBottomLeftWall:   "TopBottomLeftWall",
	RightBottomLeftWall: "RightBottomLeftWall",
	FullWall:            "FullWall",
}

// String returns the name of the field tag
func (f Field) String() string {
	if f.IsValid() {
		return fieldNames[f]
	}
	return "Unknown"
}

// IsValid returns true if f is one of the declared tags
func (f Field) IsValid() bool {
	return f >= Empty && f <= FullWall
}

// IsWall returns true for Wall and every contextual wall variant
func (f Field) IsWall() bool {
	return f >= Wall && f <= FullWall
}

// IsVariant returns true for the contextual wall variants only
func (f Field) IsVariant() bool {
	return f > Wall && f <= FullWall
}

// AllFields returns every declared tag in declaration order
func AllFields() []Field {
	fields := make([]Field, 0, len(fieldNames))
	for f := Empty; f <= FullWall; f++ {
		fields = append(fields, f)
	}
	return fields
}

// ParseField returns the tag with the given name
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return Empty, false
}
