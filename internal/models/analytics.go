package models

import "time"

// PollAnalytics is the rolling per-poll counter row, created lazily on
// the first view or submission. Counters are only ever moved with atomic
// $inc updates; two concurrent submitters must both land.
type PollAnalytics struct {
	ID                    string    `bson:"_id,omitempty" json:"id"`
	PollID                string    `bson:"poll_id" json:"pollId"`
	TotalViews            int64     `bson:"total_views" json:"totalViews"`
	TotalVotes            int64     `bson:"total_votes" json:"totalVotes"`
	AverageCompletionTime float64   `bson:"average_completion_time" json:"averageCompletionTime"`
	CompletionRate        float64   `bson:"completion_rate" json:"completionRate"`
	DemographicsData      string    `bson:"demographics_data,omitempty" json:"demographicsData,omitempty"`
	LastUpdated           time.Time `bson:"last_updated" json:"lastUpdated"`
}

// ChoiceTally is the per-choice selection count in the analytics summary.
type ChoiceTally struct {
	ChoiceID   string `json:"choiceId"`
	ChoiceText string `json:"choiceText"`
	Count      int64  `json:"count"`
}

type QuestionTally struct {
	QuestionID   string        `json:"questionId"`
	QuestionText string        `json:"questionText"`
	Choices      []ChoiceTally `json:"choices,omitempty"`
}

type AnalyticsSummary struct {
	PollID         string          `json:"pollId"`
	TotalViews     int64           `json:"totalViews"`
	TotalVotes     int64           `json:"totalVotes"`
	CompletionRate float64         `json:"completionRate"`
	LastUpdated    time.Time       `json:"lastUpdated"`
	Questions      []QuestionTally `json:"questions"`
}
