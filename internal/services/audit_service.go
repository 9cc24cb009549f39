package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"spendwise/internal/logger"
	"spendwise/internal/models"
)

// Audited actions.
const (
	ActionRegister       = "REGISTER"
	ActionLogin          = "LOGIN"
	ActionUpdateBudget   = "UPDATE_BUDGET"
	ActionCreateSpending = "CREATE_SPENDING"
	ActionUpdateSpending = "UPDATE_SPENDING"
	ActionDeleteSpending = "DELETE_SPENDING"
)

// auditService appends entries to the audit trail.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are reported to the application log
// only; the operation being audited has already committed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("audit write failed",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
		return
	}
	logger.Get().Debugw("audit", "user_id", userID, "action", action, "resource_id", resourceID)
}

func encodeChanges(action string, changes map[string]interface{}) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("audit changes not serializable", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
