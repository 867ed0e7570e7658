package models

type Notification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	ToUID          string `dynamodbav:"toUid" json:"toUid"`
	FromUID        string `dynamodbav:"fromUid" json:"fromUid"`
	FromName       string `dynamodbav:"fromName" json:"fromName"`
	Type           string `dynamodbav:"type" json:"type"`
	Message        string `dynamodbav:"message" json:"message"`
	Read           bool   `dynamodbav:"read" json:"read"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"

// Sentinels stored in place of the sender's identity on anonymous
// notifications.
const (
	AnonymousUID  = "Anonymous"
	AnonymousName = "Someone"
)
