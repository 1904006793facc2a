package model

import "time"

// AuditLog is one request's audit record. Bodies are stored after secret
// redaction.
type AuditLog struct {
	ID           string `json:"id" gorm:"primaryKey"`
	IdentityID   string `json:"identity_id,omitempty" gorm:"index:idx_audit_identity"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	IP           string `json:"ip"`
	UserAgent    string `json:"user_agent"`
	RequestBody  string `json:"request_body,omitempty"`
	StatusCode   int    `json:"status_code"`
	ResponseBody string `json:"response_body,omitempty"`
	LatencyMs    int64  `json:"latency_ms"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_audit_identity"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
