package entity

import "time"

// AlertType origen de la alerta.
type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertExpiry     AlertType = "expiry"
	AlertCompliance AlertType = "compliance"
)

// AlertSeverity gravedad de la alerta.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Rank orden de gravedad (info < warning < critical); 0 si el valor es desconocido.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// Alert notificación derivada del stock; se crea y se reconoce de forma independiente.
type Alert struct {
	ID             string
	WarehouseID    string
	ProductID      string
	Type           AlertType
	Severity       AlertSeverity
	Message        string
	Acknowledged   bool
	AcknowledgedBy string
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
}
