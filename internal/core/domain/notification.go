package domain

// Notification types sent to clients.
const (
	NotifyRestoreID     = "ConnectionRestoreId"
	NotifyRestoreStatus = "ConnectionRestoreStatus"
)

// Restore status values carried by NotifyRestoreStatus.
const (
	StatusRestored = "restored"
	StatusTimedOut = "timed out"
)

// Notification is a structured payload sent to a client.
type Notification struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// RestoreIDNotification announces the token issued for a new connection.
func RestoreIDNotification(token string) Notification {
	return Notification{Type: NotifyRestoreID, Value: token}
}

// RestoreStatusNotification reports the outcome of a restore request.
func RestoreStatusNotification(status string) Notification {
	return Notification{Type: NotifyRestoreStatus, Value: status}
}
