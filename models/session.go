package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"zenzone/stress"
)

// Session records one completed stress analysis. Raw audio is never stored,
// only the transcript and the three acoustic descriptors.
type Session struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	StressScore     float64            `bson:"stressScore" json:"stressScore"`
	Emotion         string             `bson:"emotion" json:"emotion"`
	Transcript      string             `bson:"transcript,omitempty" json:"transcript,omitempty"`
	AudioFeatures   stress.Descriptors `bson:"audioFeatures" json:"audioFeatures"`
	SuggestedAction string             `bson:"suggestedAction" json:"suggestedAction"`
}

// AnalysisResult is the wire shape returned for one scored utterance.
type AnalysisResult struct {
	Text          string             `json:"text"`
	Emotion       string             `json:"emotion"`
	FriendlyLabel string             `json:"friendly_label"`
	StressScore   float64            `json:"stress_score"`
	Suggestion    stress.Suggestion  `json:"suggestion"`
	AudioFeatures stress.Descriptors `json:"audio_features"`
}
