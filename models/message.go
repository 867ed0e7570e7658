package models

// Message is append-only. Sequence is a per-match monotonic counter that
// total-orders messages whose RFC3339 timestamps collide.
type Message struct {
	MessageID string    `dynamodbav:"messageId" json:"messageId"`
	MatchID   string    `dynamodbav:"matchId" json:"matchId"`
	SenderID  string    `dynamodbav:"senderId" json:"senderId"`
	Text      string    `dynamodbav:"text" json:"text"`
	CreatedAt string    `dynamodbav:"createdAt" json:"createdAt"`
	Sequence  int64     `dynamodbav:"sequence" json:"sequence"`
	ReplyTo   *ReplyRef `dynamodbav:"replyTo,omitempty" json:"replyTo,omitempty"`
}

// ReplyRef is a write-time snapshot of the quoted message. It is a copy, not a
// reference: later changes to the original never touch it.
type ReplyRef struct {
	MessageID    string `dynamodbav:"messageId" json:"messageId"`
	TextSnapshot string `dynamodbav:"text" json:"text"`
	AuthorLabel  string `dynamodbav:"name" json:"name"`
}

// MessagesTable is the DynamoDB table name for match messages
const MessagesTable = "Messages"
