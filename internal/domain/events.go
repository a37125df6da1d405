package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceCVService is the event source name used on the event bus.
const SourceCVService = "cv-portfolio.api"

// EventTypeCVViewed is emitted after a successful, counted retrieval.
const EventTypeCVViewed = "CVViewed"

// CVViewed records one counted retrieval of a CV.
type CVViewed struct {
	EventID  string    `json:"event_id"`
	CVID     string    `json:"cv_id"`
	Views    int       `json:"views"`
	ViewedAt time.Time `json:"viewed_at"`
}

// NewCVViewed builds the event for a record whose counter is now views.
func NewCVViewed(cvID string, views int, at time.Time) CVViewed {
	return CVViewed{
		EventID:  uuid.New().String(),
		CVID:     cvID,
		Views:    views,
		ViewedAt: at.UTC(),
	}
}

func (e CVViewed) GetEventType() string { return EventTypeCVViewed }
func (e CVViewed) GetAggregateID() string { return e.CVID }
func (e CVViewed) GetTimestamp() time.Time { return e.ViewedAt }
