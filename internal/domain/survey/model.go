package survey

import (
	"errors"
	"time"
)

// Score bounds for all survey questions.
const (
	MinScore = 1
	MaxScore = 10
)

// Domain errors
var (
	ErrEmptyParticipant = errors.New("survey response must belong to a participant")
	ErrEmptyEvent       = errors.New("survey response must reference an event")
	ErrScoreOutOfRange  = errors.New("survey scores must be between 1 and 10")
)

// Response is one participant's feedback for one event. Its identity is the
// composite (ParticipantID, EventID).
type Response struct {
	ParticipantID  string
	EventID        string
	SubmittedAt    time.Time
	Satisfaction   int
	Usefulness     int
	Instructor     int
	Recommendation int
	Comments       string
}

// Validate checks if the Response has valid data.
// PRE: Response struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Response) Validate() error {
	if r.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if r.EventID == "" {
		return ErrEmptyEvent
	}
	for _, s := range []int{r.Satisfaction, r.Usefulness, r.Instructor, r.Recommendation} {
		if s < MinScore || s > MaxScore {
			return ErrScoreOutOfRange
		}
	}
	return nil
}

// NPSBucket is a lookup row mapping a recommendation score to its
// promoter/passive/detractor bucket label.
type NPSBucket struct {
	RecommendationScore int
	Bucket              string
}
