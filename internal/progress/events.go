package progress

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventDatasetSaved   = "dataset.saved"
	EventMergeDone      = "merge.done"
	EventScrapeProgress = "scrape.progress"
)

type Event struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	Series string    `json:"series,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

func NewEvent(eventType, series, detail string) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		Series: series,
		Detail: detail,
		At:     time.Now().UTC(),
	}
}
