// internal/models/admin.go
package models

type AuditLog struct {
	BaseModel
	ActorID      *string `json:"actor_id" gorm:"size:64;index"`
	Action       string  `json:"action" gorm:"size:255;not null"`
	ResourceType string  `json:"resource_type" gorm:"size:100;index"`
	ResourceID   *string `json:"resource_id" gorm:"size:64;index"`
	IPAddress    string  `json:"ip_address" gorm:"size:45"`
	UserAgent    string  `json:"user_agent" gorm:"size:500"`
	Payload      JSONB   `json:"payload" gorm:"type:jsonb"`
}

func (AuditLog) TableName() string { return "audit_logs" }
