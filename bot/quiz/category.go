package quiz

// Category is one of the five fixed face-type outcomes.
// The table is fixed at build time; values are never mutated.
type Category struct {
	// Key identifies the category in logs and metrics.
	Key string
	// Name is the user-facing display name.
	Name string
	// Keyword is the short descriptive phrase shown with the name.
	Keyword string
}

var (
	CategoryCute = Category{
		Key:     "cute",
		Name:    "キュート",
		Keyword: "かわいい・やさしい",
	}
	CategoryClear = Category{
		Key:     "clear",
		Name:    "クリア",
		Keyword: "すっきり・爽やか",
	}
	CategoryElegant = Category{
		Key:     "elegant",
		Name:    "エレガント",
		Keyword: "はなやか・上品",
	}
	CategoryCool = Category{
		Key:     "cool",
		Name:    "クール",
		Keyword: "シャープ・かっこいい",
	}
	// CategoryNatural is the neutral outcome used when either answer is unknown.
	CategoryNatural = Category{
		Key:     "natural",
		Name:    "ナチュラル",
		Keyword: "バランス・自然体",
	}
)

type answerPair struct {
	face FaceValue
	line LineValue
}

var categoryTable = map[answerPair]Category{
	{FaceChild, LineCurve}:    CategoryCute,
	{FaceChild, LineStraight}: CategoryClear,
	{FaceAdult, LineCurve}:    CategoryElegant,
	{FaceAdult, LineStraight}: CategoryCool,
}
