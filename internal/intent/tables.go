// ABOUTME: Versioned keyword tables driving intent classification
// ABOUTME: Grade synonyms, topic keywords, request phrases and visual phrases
package intent

import "github.com/harper/mathbank/internal/models"

// TablesVersion identifies the keyword table revision. Bump when entries
// change so downstream evaluation runs can be tied to a table state.
const TablesVersion = "2025-08"

// gradeSynonym maps one spoken form of a grade to its level. The table is
// ordered; detection takes the first synonym found in the query.
type gradeSynonym struct {
	Phrase string
	Grade  models.GradeLevel
}

// GradeSynonyms lists all recognized grade spellings. Every synonym matches
// on word boundaries, so "p1" never fires inside an unrelated token.
var GradeSynonyms = []gradeSynonym{
	{"p1", models.GradeP1}, {"primary 1", models.GradeP1}, {"primary one", models.GradeP1}, {"grade 1", models.GradeP1},
	{"p2", models.GradeP2}, {"primary 2", models.GradeP2}, {"primary two", models.GradeP2}, {"grade 2", models.GradeP2},
	{"p3", models.GradeP3}, {"primary 3", models.GradeP3}, {"primary three", models.GradeP3}, {"grade 3", models.GradeP3},
	{"p4", models.GradeP4}, {"primary 4", models.GradeP4}, {"primary four", models.GradeP4}, {"grade 4", models.GradeP4},
	{"p5", models.GradeP5}, {"primary 5", models.GradeP5}, {"primary five", models.GradeP5}, {"grade 5", models.GradeP5},
	{"p6", models.GradeP6}, {"primary 6", models.GradeP6}, {"primary six", models.GradeP6}, {"grade 6", models.GradeP6},
}

// topicEntry maps a canonical topic name to the keywords that indicate it.
// Keywords match on word boundaries, so the short unit keywords ("m", "g")
// never fire inside ordinary words.
type topicEntry struct {
	Topic    string
	Keywords []string
}

// TopicKeywords is tried in declaration order; the first topic with any
// matching keyword wins.
var TopicKeywords = []topicEntry{
	{"Addition", []string{"add", "addition", "plus", "sum", "total", "altogether", "combine"}},
	{"Subtraction", []string{"subtract", "subtraction", "minus", "take away", "difference", "left over", "fewer", "remain"}},
	{"Multiplication", []string{"multiply", "multiplication", "times", "product", "groups of", "twice"}},
	{"Division", []string{"divide", "division", "share", "shared equally", "split", "quotient"}},
	{"Fractions", []string{"fraction", "fractions", "half", "halves", "quarter", "third", "numerator", "denominator"}},
	{"Money", []string{"money", "dollar", "dollars", "cent", "cents", "cost", "price", "change", "buy", "spent"}},
	{"Time", []string{"time", "clock", "hour", "hours", "minute", "minutes", "o'clock", "duration"}},
	{"Length", []string{"length", "long", "longer", "taller", "shorter", "metre", "meter", "centimetre", "cm", "m", "km"}},
	{"Mass", []string{"mass", "weight", "weigh", "heavy", "heavier", "lighter", "kilogram", "kg", "gram", "g"}},
	{"Volume", []string{"volume", "capacity", "litre", "liter", "millilitre", "ml"}},
	{"Geometry", []string{"shape", "shapes", "triangle", "square", "rectangle", "circle", "angle", "perimeter", "area"}},
	{"Word Problems", []string{"word problem", "word problems", "story problem", "story sum"}},
}

// RequestPhrases mark a query as asking for practice questions. Matching is
// plain substring: "question" should fire inside "questions" too.
var RequestPhrases = []string{
	"give me",
	"i need",
	"practice",
	"question",
	"problem",
	"example",
	"test me",
	"quiz me",
	"generate",
	"create",
	"more questions",
	"another question",
	"some questions",
}

// VisualPhrases mark a query as wanting picture or emoji support.
var VisualPhrases = []string{
	"visual",
	"picture",
	"image",
	"emoji",
	"drawing",
	"show me",
	"illustration",
}
