package models

// Match is keyed by a deterministic id derived from the sorted uid pair, so
// concurrent creation attempts from both sides converge on the same record.
type Match struct {
	MatchID        string          `dynamodbav:"matchId" json:"matchId"`
	Users          []string        `dynamodbav:"users" json:"users"` // sorted pair
	CreatedAt      string          `dynamodbav:"createdAt" json:"createdAt"`
	LastActivityAt string          `dynamodbav:"lastActivityAt,omitempty" json:"lastActivityAt,omitempty"`
	LastMessage    *MessagePreview `dynamodbav:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	Seq            int64           `dynamodbav:"seq" json:"-"` // per-match message counter
}

// MessagePreview is the denormalized inbox summary on the match record.
type MessagePreview struct {
	Text      string `dynamodbav:"text" json:"text"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	IsReply   bool   `dynamodbav:"isReply" json:"isReply"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Other returns the counterpart uid, or "" when uid is not part of the match.
func (m *Match) Other(uid string) string {
	for _, u := range m.Users {
		if u != uid {
			return u
		}
	}
	return ""
}

// Has reports whether uid is one of the two matched users.
func (m *Match) Has(uid string) bool {
	for _, u := range m.Users {
		if u == uid {
			return true
		}
	}
	return false
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
