package entity

import (
	"encoding/json"
	"time"
)

// Operaciones auditadas.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditEntry registro de auditoría (tabla, id, operación, antes/después).
type AuditEntry struct {
	Table     string
	RecordID  string
	Operation string
	Before    json.RawMessage
	After     json.RawMessage
	ActorID   string
	At        time.Time
}
