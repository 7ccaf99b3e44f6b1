package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKnownPairs(t *testing.T) {
	assert.Equal(t, CategoryCute, Classify(FaceChild, LineCurve))
	assert.Equal(t, CategoryClear, Classify(FaceChild, LineStraight))
	assert.Equal(t, CategoryElegant, Classify(FaceAdult, LineCurve))
	assert.Equal(t, CategoryCool, Classify(FaceAdult, LineStraight))
}

func TestClassifyUnknownAlwaysNeutral(t *testing.T) {
	faces := []FaceValue{FaceChild, FaceAdult, FaceUnknown}
	lines := []LineValue{LineCurve, LineStraight, LineUnknown}

	for _, f := range faces {
		for _, l := range lines {
			got := Classify(f, l)
			if f == FaceUnknown || l == LineUnknown {
				assert.Equal(t, CategoryNatural, got, "face=%s line=%s", f, l)
			} else {
				assert.NotEmpty(t, got.Name, "face=%s line=%s", f, l)
				assert.NotEmpty(t, got.Keyword, "face=%s line=%s", f, l)
			}
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify(FaceAdult, LineCurve)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(FaceAdult, LineCurve))
	}
}

func TestParseFaceNormalizesOutOfEnum(t *testing.T) {
	assert.Equal(t, FaceChild, ParseFace("child"))
	assert.Equal(t, FaceAdult, ParseFace("adult"))
	assert.Equal(t, FaceUnknown, ParseFace("unknown"))
	assert.Equal(t, FaceUnknown, ParseFace(""))
	assert.Equal(t, FaceUnknown, ParseFace("CHILD"))
	assert.Equal(t, FaceUnknown, ParseFace("alien"))
}

func TestParseLineNormalizesOutOfEnum(t *testing.T) {
	assert.Equal(t, LineCurve, ParseLine("curve"))
	assert.Equal(t, LineStraight, ParseLine("straight"))
	assert.Equal(t, LineUnknown, ParseLine("zigzag"))
	assert.Equal(t, LineUnknown, ParseLine(""))
}
