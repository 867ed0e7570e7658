package models

type FriendRequest struct {
	RequestID string `dynamodbav:"requestId" json:"requestId"`
	FromUID   string `dynamodbav:"fromUid" json:"fromUid"`
	ToUID     string `dynamodbav:"toUid" json:"toUid"`
	Status    string `dynamodbav:"status" json:"status"`
	Source    string `dynamodbav:"source" json:"source"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// FriendRequestsTable is the DynamoDB table name for pending friend requests.
// Accepted and rejected requests are deleted, never kept.
const FriendRequestsTable = "FriendRequests"

// GSIs for looking a pending request up by either side of the pair.
const (
	RequestToUIDIndex   = "toUid-index"
	RequestFromUIDIndex = "fromUid-index"
)
