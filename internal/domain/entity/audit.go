package entity

import "time"

// AuditEntry es una fila de la bitácora del backend (solo lectura).
type AuditEntry struct {
	ID        string
	UserID    string
	Action    string
	Timestamp time.Time
}
