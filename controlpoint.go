package spiro

import (
	"fmt"
	"math"
)

// PointType describes how the spline behaves at a control point.
//
// The byte values match the single-character tags used by libspiro and the
// plate file format, so a PointType can be printed and parsed as one
// character.
type PointType byte

const (
	// Corner is a point where the tangent may change abruptly. No continuity
	// constraint crosses a corner.
	Corner PointType = 'v'
	// G4 is a smooth point with continuous tangent, curvature and the first
	// two derivatives of curvature.
	G4 PointType = 'o'
	// G2 is a smooth point with continuous tangent and curvature.
	G2 PointType = 'c'
	// Left is a transition from a curve on the left to a straight line on the
	// right.
	Left PointType = '['
	// Right is a transition from a straight line on the left to a curve on
	// the right.
	Right PointType = ']'
	// End terminates a closed contour in a tagged point list. It is not a
	// point on the curve.
	End PointType = 'z'
	// OpenContour marks the first point of an open contour.
	OpenContour PointType = '{'
	// EndOpenContour marks the last point of an open contour.
	EndOpenContour PointType = '}'
)

var pointTypeNames = map[PointType]string{
	Corner:         "Corner",
	G4:             "G4",
	G2:             "G2",
	Left:           "Left",
	Right:          "Right",
	End:            "End",
	OpenContour:    "OpenContour",
	EndOpenContour: "EndOpenContour",
}

// PointTypes returns all valid point types, in the order libspiro lists them.
func PointTypes() []PointType {
	return []PointType{Corner, G4, G2, Left, Right, End, OpenContour, EndOpenContour}
}

// ParsePointType returns the point type identified by the tag c.
func ParsePointType(c byte) (PointType, error) {
	ty := PointType(c)
	if !ty.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPointType, c)
	}
	return ty, nil
}

// Valid reports whether ty is one of the eight defined point types.
func (ty PointType) Valid() bool {
	_, ok := pointTypeNames[ty]
	return ok
}

// IsMarker reports whether ty delimits contours in a tagged point list.
func (ty PointType) IsMarker() bool {
	return ty == End || ty == OpenContour || ty == EndOpenContour
}

func (ty PointType) String() string {
	if s, ok := pointTypeNames[ty]; ok {
		return s
	}
	return fmt.Sprintf("PointType(%q)", byte(ty))
}

// MarshalText encodes the point type as its one-character tag.
func (ty PointType) MarshalText() ([]byte, error) {
	if !ty.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPointType, byte(ty))
	}
	return []byte{byte(ty)}, nil
}

// UnmarshalText decodes a one-character tag.
func (ty *PointType) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidPointType, b)
	}
	v, err := ParsePointType(b[0])
	if err != nil {
		return err
	}
	*ty = v
	return nil
}

// ControlPoint is a point the spline passes through, along with the kind of
// continuity the spline has at that point.
type ControlPoint struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	Type PointType `json:"type"`
}

// CP returns the control point (x, y) of type ty.
func CP(x, y float64, ty PointType) ControlPoint {
	return ControlPoint{X: x, Y: y, Type: ty}
}

// Point returns the control point's position.
func (cp ControlPoint) Point() Point {
	return Point{X: cp.X, Y: cp.Y}
}

func (cp ControlPoint) String() string {
	return fmt.Sprintf("%c(%g, %g)", byte(cp.Type), cp.X, cp.Y)
}

// Validate checks that the point has a known type and finite coordinates.
func (cp ControlPoint) Validate() error {
	if !cp.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPointType, byte(cp.Type))
	}
	if math.IsNaN(cp.X) || math.IsInf(cp.X, 0) || math.IsNaN(cp.Y) || math.IsInf(cp.Y, 0) {
		return fmt.Errorf("%w: %v", ErrNonFinite, cp.Point())
	}
	return nil
}
