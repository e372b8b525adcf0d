package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventCatalogUpdated = "catalog_updated"

type CatalogUpdatedEvent struct {
	Type      string `json:"type"`
	Resource  string `json:"resource"`
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NotifyCatalogUpdated tells connected clients that a test, question,
// course, chapter or chapter question was created.
func (h *Hub) NotifyCatalogUpdated(resource, id string) {
	if h == nil {
		return
	}

	resource = strings.TrimSpace(resource)
	if resource == "" {
		return
	}

	evt := CatalogUpdatedEvent{
		Type:      EventCatalogUpdated,
		Resource:  resource,
		ID:        strings.TrimSpace(id),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
