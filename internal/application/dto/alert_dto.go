package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID             string     `json:"id"`
	WarehouseID    string     `json:"warehouse_id"`
	ProductID      string     `json:"product_id"`
	Type           string     `json:"type"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AlertListResponse lista de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// EvaluateAlertsResponse alertas creadas o escaladas en una evaluación.
type EvaluateAlertsResponse struct {
	Created   []AlertResponse `json:"created"`
	Escalated []AlertResponse `json:"escalated"`
}
