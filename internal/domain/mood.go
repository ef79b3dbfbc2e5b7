package domain

import (
	"regexp"
	"strings"
)

// Mood is one of the fixed vocabulary labels used for theming.
type Mood string

// The fixed mood vocabulary. Analysis responses are validated against this
// set; anything outside it falls back through ParseMoodResponse.
const (
	MoodInspirational Mood = "inspirational"
	MoodMotivational  Mood = "motivational"
	MoodPhilosophical Mood = "philosophical"
	MoodHumorous      Mood = "humorous"
	MoodMelancholic   Mood = "melancholic"
	MoodOptimistic    Mood = "optimistic"
	MoodContemplative Mood = "contemplative"
	MoodWise          Mood = "wise"
	MoodUplifting     Mood = "uplifting"
)

// MoodVocabulary lists all permitted moods in a fixed order. The order
// matters: substring scanning walks it front to back.
var MoodVocabulary = []Mood{
	MoodInspirational,
	MoodMotivational,
	MoodPhilosophical,
	MoodHumorous,
	MoodMelancholic,
	MoodOptimistic,
	MoodContemplative,
	MoodWise,
	MoodUplifting,
}

// moodColors maps each mood to its default theme color.
var moodColors = map[Mood]string{
	MoodInspirational: "#FFD700",
	MoodMotivational:  "#FF6347",
	MoodPhilosophical: "#4B0082",
	MoodHumorous:      "#FFA500",
	MoodMelancholic:   "#4682B4",
	MoodOptimistic:    "#32CD32",
	MoodContemplative: "#9370DB",
	MoodWise:          "#8B4513",
	MoodUplifting:     "#00CED1",
}

// moodRotation is the short rotation table used when a response cannot be
// parsed at all, or when the analysis service is unreachable. The selection
// formulas (length modulo, time modulo) are deliberate simple heuristics,
// not randomness.
var moodRotation = []MoodResult{
	{Mood: MoodContemplative, Color: "#9370DB"},
	{Mood: MoodInspirational, Color: "#FFD700"},
	{Mood: MoodPhilosophical, Color: "#4B0082"},
	{Mood: MoodOptimistic, Color: "#32CD32"},
	{Mood: MoodWise, Color: "#8B4513"},
}

// hexColorPattern matches a #RRGGBB color.
var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// MoodResult is the outcome of a mood analysis. Color is always #RRGGBB.
type MoodResult struct {
	Mood  Mood
	Color string
}

// ValidMood reports whether m is in the fixed vocabulary.
func ValidMood(m Mood) bool {
	_, ok := moodColors[m]
	return ok
}

// DefaultColor returns the default theme color for a mood.
// Unknown moods get the contemplative color.
func DefaultColor(m Mood) string {
	if c, ok := moodColors[m]; ok {
		return c
	}

	return moodColors[MoodContemplative]
}

// ValidHexColor reports whether s is a #RRGGBB color.
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// FallbackByLength picks a rotation entry keyed by response length.
// Used when a completion arrives but cannot be parsed.
func FallbackByLength(n int) MoodResult {
	if n < 0 {
		n = -n
	}

	return moodRotation[n%len(moodRotation)]
}

// FallbackByTime picks a rotation entry keyed by a unix timestamp.
// Used when the analysis service is unreachable.
func FallbackByTime(unix int64) MoodResult {
	if unix < 0 {
		unix = -unix
	}

	return moodRotation[unix%int64(len(moodRotation))]
}

// ParseMoodResponse turns free-form completion text into a MoodResult.
// It is a total function with a three-step grammar:
//
//  1. "mood:#RRGGBB", accepted only if the mood is in the vocabulary and
//     the color is a valid hex triplet.
//  2. Substring scan: the first vocabulary mood found anywhere in the
//     text, paired with that mood's default color.
//  3. Rotation: a deterministic entry keyed by the response length.
func ParseMoodResponse(response string) MoodResult {
	trimmed := strings.TrimSpace(response)

	if before, after, found := strings.Cut(trimmed, ":"); found {
		mood := Mood(strings.ToLower(strings.TrimSpace(before)))
		color := strings.TrimSpace(after)

		if ValidMood(mood) && ValidHexColor(color) {
			return MoodResult{Mood: mood, Color: color}
		}
	}

	lowered := strings.ToLower(trimmed)
	for _, mood := range MoodVocabulary {
		if strings.Contains(lowered, string(mood)) {
			return MoodResult{Mood: mood, Color: DefaultColor(mood)}
		}
	}

	return FallbackByLength(len(response))
}
