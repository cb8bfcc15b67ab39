package models

// Event entities
const (
	EntityUser       = "user"
	EntityCredential = "credential"
	EntityQuestion   = "question"
)

// Event operations
const (
	OperationCreated = "created"
	OperationUpdated = "updated"
	OperationDeleted = "deleted"
)

// Event is published after a successful write.
type Event struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the write.
	Entity    string `json:"entity"`    // Entity is the kind of record written, e.g. "user".
	EntityID  string `json:"entity_id"` // EntityID identifies the written record.
	Operation string `json:"operation"` // Operation is "created", "updated" or "deleted".
}
