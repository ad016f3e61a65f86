package domain

// Category is one scored dimension of the questionnaire. The original product
// keyed body systems by color names; the keys are kept for data compatibility.
type Category string

const (
	CategoryYellow  Category = "yellow"
	CategoryGreen   Category = "green"
	CategoryCyan    Category = "cyan"
	CategoryRed     Category = "red"
	CategoryGray    Category = "gray"
	CategoryPurple  Category = "purple"
	CategoryOrange  Category = "orange"
	CategoryMagenta Category = "magenta"
	CategoryBlue    Category = "blue"
	CategoryPink    Category = "pink"
)

// Categories is the canonical enumeration order. Result rendering uses it to
// break score ties deterministically.
var Categories = []Category{
	CategoryYellow,
	CategoryGreen,
	CategoryCyan,
	CategoryRed,
	CategoryGray,
	CategoryPurple,
	CategoryOrange,
	CategoryMagenta,
	CategoryBlue,
	CategoryPink,
}

// SystemName maps a category to its user-facing body-system name.
var SystemName = map[Category]string{
	CategoryYellow:  "Травна система",
	CategoryGreen:   "Шлунково-кишковий тракт",
	CategoryCyan:    "Серцево-судинна система",
	CategoryRed:     "Нервова система",
	CategoryGray:    "Імунна система",
	CategoryPurple:  "Дихальна система",
	CategoryOrange:  "Сечовидільна система",
	CategoryMagenta: "Ендокринна система",
	CategoryBlue:    "Опорно-рухова система",
	CategoryPink:    "Шкіра",
}

const (
	LabelVeryGood     = "дуже добре"
	LabelGood         = "добре"
	LabelSatisfactory = "задовільно"
	LabelPoor         = "незадовільно"
	LabelUnknown      = "невідомо"
)

// Threshold is one step of a category's evaluation scale: scores up to and
// including Max get Label.
type Threshold struct {
	Max   int
	Label string
}

// criteria holds the ascending evaluation scale per category. The last entry
// of each scale is the catch-all; Evaluate falls back to it for any score
// above all explicit thresholds.
var criteria = map[Category][]Threshold{
	CategoryYellow:  {{2, LabelVeryGood}, {4, LabelGood}, {9, LabelSatisfactory}},
	CategoryGreen:   {{2, LabelVeryGood}, {4, LabelGood}, {9, LabelSatisfactory}},
	CategoryCyan:    {{2, LabelVeryGood}, {3, LabelGood}, {7, LabelSatisfactory}},
	CategoryRed:     {{2, LabelVeryGood}, {5, LabelGood}, {9, LabelSatisfactory}},
	CategoryGray:    {{2, LabelVeryGood}, {4, LabelGood}, {7, LabelSatisfactory}},
	CategoryPurple:  {{0, LabelVeryGood}, {3, LabelGood}, {5, LabelSatisfactory}},
	CategoryOrange:  {{0, LabelVeryGood}, {1, LabelGood}, {4, LabelSatisfactory}},
	CategoryMagenta: {{2, LabelVeryGood}, {5, LabelGood}, {9, LabelSatisfactory}},
	CategoryBlue:    {{1, LabelVeryGood}, {3, LabelGood}, {8, LabelSatisfactory}},
	CategoryPink:    {{1, LabelVeryGood}, {3, LabelGood}, {6, LabelSatisfactory}},
}

// catchAllLabel applies to any score above a category's last threshold.
const catchAllLabel = LabelPoor

// labelIcons maps evaluation labels to traffic-light icons.
var labelIcons = map[string]string{
	LabelVeryGood:     "🟢",
	LabelGood:         "🟡",
	LabelSatisfactory: "🟠",
	LabelPoor:         "🔴",
}

// Evaluate maps a raw category score to its evaluation label: the first
// threshold not below the score wins. A category without criteria degrades to
// LabelUnknown instead of panicking.
func Evaluate(cat Category, score int) string {
	scale, ok := criteria[cat]
	if !ok || len(scale) == 0 {
		return LabelUnknown
	}
	for _, t := range scale {
		if score <= t.Max {
			return t.Label
		}
	}
	return catchAllLabel
}

// Icon returns the display icon for an evaluation label, with a neutral
// fallback for unknown labels.
func Icon(label string) string {
	if ic, ok := labelIcons[label]; ok {
		return ic
	}
	return "⚪"
}

// DisplayName returns the body-system name for a category, falling back to
// the raw key so a data gap stays visible instead of crashing.
func DisplayName(cat Category) string {
	if n, ok := SystemName[cat]; ok {
		return n
	}
	return string(cat)
}
