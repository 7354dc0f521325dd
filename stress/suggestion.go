package stress

// Suggestion is the activity recommendation attached to a severity band.
type Suggestion struct {
	Title       string `json:"title" bson:"title"`
	Activity    string `json:"activity" bson:"activity"`
	Action      string `json:"action" bson:"action"`
	Description string `json:"description" bson:"description"`
}

// Thresholds are the ascending band boundaries; each band is inclusive at its
// low end and exclusive at the next boundary.
type Thresholds struct {
	CalmMax     float64
	TenseMax    float64
	StressedMax float64
}

// DefaultThresholds partitions the scale at 25 / 50 / 75.
func DefaultThresholds() Thresholds {
	return Thresholds{CalmMax: 25, TenseMax: 50, StressedMax: 75}
}

// SuggestionFor maps a final stress score to exactly one suggestion band.
// Total and deterministic: every score lands in a band.
func SuggestionFor(score float64, t Thresholds) Suggestion {
	switch {
	case score < t.CalmMax:
		return Suggestion{
			Title:       "Calm",
			Activity:    "Play soft lo-fi music 🎧",
			Action:      "play_lofi",
			Description: "Your stress levels are low. Maintain this calm state with soothing lo-fi music.",
		}
	case score < t.TenseMax:
		return Suggestion{
			Title:       "Slightly Tense",
			Activity:    "Try a 2-min breathing session 🌬️",
			Action:      "breathing",
			Description: "Take a short breathing break to maintain your balance.",
		}
	case score < t.StressedMax:
		return Suggestion{
			Title:       "Stressed",
			Activity:    "Do a short body scan meditation 🧘‍♀️",
			Action:      "body_scan",
			Description: "A guided body scan can help reduce your building stress.",
		}
	default:
		return Suggestion{
			Title:       "Overwhelmed",
			Activity:    "Take a walk or listen to nature sounds 🌲🌊",
			Action:      "nature_sounds",
			Description: "Your stress levels are high. Take a break with calming nature sounds.",
		}
	}
}
