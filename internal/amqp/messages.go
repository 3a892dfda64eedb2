package amqp

import (
	"encoding/json"
	"time"

	"tally/internal/core"
)

// BudgetAlertMessage carries one budget notification to external consumers.
// The NotificationID is stable per goal and status, so a consumer can diff
// against previously seen ids instead of re-alerting.
type BudgetAlertMessage struct {
	NotificationID string            `json:"notification_id"`
	UserID         string            `json:"user_id"`
	GoalID         string            `json:"goal_id"`
	Category       string            `json:"category"`
	Status         core.BudgetStatus `json:"status"`
	SpentCents     int64             `json:"spent_cents"`
	LimitCents     int64             `json:"limit_cents"`
	Percent        float64           `json:"percent"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Timestamp      time.Time         `json:"timestamp"`
}

// NewBudgetAlertMessage pairs a notification with its evaluated report.
func NewBudgetAlertMessage(userID string, n core.BudgetNotification, r core.BudgetReport) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		NotificationID: n.ID,
		UserID:         userID,
		GoalID:         n.GoalID,
		Category:       n.Category,
		Status:         n.Status,
		SpentCents:     r.Spent.Cents,
		LimitCents:     r.Limit.Cents,
		Percent:        r.Percent,
		Title:          n.Title,
		Message:        n.Message,
		Timestamp:      time.Now(),
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
