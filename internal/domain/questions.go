package domain

// Question is one questionnaire item. A "yes" answer adds Weights to the
// user's per-category scores; "no" and "skip" add nothing.
type Question struct {
	Prompt  string
	Weights map[Category]int
}

// Questions is the fixed ordered question bank; the slice index is the qid
// used as progress cursor and answer-correlation id. Every weight map covers
// the full category set (zero entries included) so scoring never needs
// missing-key defaults.
var Questions = []Question{
	{
		Prompt:  "Ви відчуваєте нестачу енергії?",
		Weights: map[Category]int{CategoryYellow: 1, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 1, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Часто хворієте (більше 2 разів на рік)?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 1},
	},
	{
		Prompt:  "Неприємний запах тіла або з рота (або важке дихання)?",
		Weights: map[Category]int{CategoryYellow: 1, CategoryGreen: 1, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 1, CategoryOrange: 1, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Погане перетравлення деяких продуктів?",
		Weights: map[Category]int{CategoryYellow: 1, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Ви їсте червоне м’ясо ≥ 2 рази на тиждень?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 1, CategoryCyan: 1, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 1, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Використовуєте антибіотики (інші ліки) більше 2 разів на рік?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 1, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Регулярне вживання алкоголю?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Перепади настрою?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Лущення шкіри?",
		Weights: map[Category]int{CategoryYellow: 1, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 1, CategoryPurple: 1, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 1},
	},
	{
		Prompt:  "Темні кола (і/або набряклість) під очима?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 1, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 1},
	},
	{
		Prompt:  "Важко зосередитися, погана пам’ять?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Нервова обстановка, надлишок стресів?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 1, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 1},
	},
	{
		Prompt:  "Проблеми зі шкірою?",
		Weights: map[Category]int{CategoryYellow: 1, CategoryGreen: 1, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 1, CategoryMagenta: 1, CategoryBlue: 1, CategoryPink: 1},
	},
	{
		Prompt:  "Надмірне споживання молочних продуктів?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 1, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 1, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Сон, що не приносить відпочинку?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Проблеми з сечовипусканням?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 1, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 0},
	},
	{
		Prompt:  "Випадіння волосся?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 1, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 1, CategoryPink: 0},
	},
	{
		Prompt:  "Набряки та біль у суглобах?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 1, CategoryRed: 0, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 1, CategoryPink: 0},
	},
	{
		Prompt:  "Важко підтримувати нормальну вагу?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 1, CategoryGray: 1, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 1, CategoryBlue: 1, CategoryPink: 0},
	},
	{
		Prompt:  "Великі пори на шкірі, підвищене саловиділення, вугрі?",
		Weights: map[Category]int{CategoryYellow: 0, CategoryGreen: 0, CategoryCyan: 0, CategoryRed: 0, CategoryGray: 0, CategoryPurple: 0, CategoryOrange: 0, CategoryMagenta: 0, CategoryBlue: 0, CategoryPink: 1},
	},
}
