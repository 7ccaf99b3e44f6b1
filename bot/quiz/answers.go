// Package quiz holds the face-type quiz domain: answer values, the fixed
// category table, and the classifier that maps answers to a category.
package quiz

// FaceValue is the answer to the first question (face impression).
type FaceValue string

// LineValue is the answer to the second question (line impression).
type LineValue string

const (
	FaceChild   FaceValue = "child"
	FaceAdult   FaceValue = "adult"
	FaceUnknown FaceValue = "unknown"

	LineCurve    LineValue = "curve"
	LineStraight LineValue = "straight"
	LineUnknown  LineValue = "unknown"
)

// ParseFace normalizes a raw payload value to a FaceValue.
// Anything outside the known set collapses to FaceUnknown.
func ParseFace(raw string) FaceValue {
	switch FaceValue(raw) {
	case FaceChild, FaceAdult:
		return FaceValue(raw)
	default:
		return FaceUnknown
	}
}

// ParseLine normalizes a raw payload value to a LineValue.
// Anything outside the known set collapses to LineUnknown.
func ParseLine(raw string) LineValue {
	switch LineValue(raw) {
	case LineCurve, LineStraight:
		return LineValue(raw)
	default:
		return LineUnknown
	}
}
