package models

// InterestSignal is a one-directional like or crush. TargetKey is the sort key
// "<toUid>#<kind>", which makes (fromUid, toUid, kind) unique by construction.
type InterestSignal struct {
	FromUID   string `dynamodbav:"fromUid" json:"fromUid"`
	TargetKey string `dynamodbav:"targetKey" json:"-"`
	ToUID     string `dynamodbav:"toUid" json:"toUid"`
	Kind      string `dynamodbav:"kind" json:"kind"`
	Anonymous bool   `dynamodbav:"anonymous" json:"anonymous"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// InterestSignalsTable is the DynamoDB table name for interest signals
const InterestSignalsTable = "InterestSignals"

// SignalTargetKey builds the sort key enforcing one signal per (to, kind).
func SignalTargetKey(toUID, kind string) string {
	return toUID + "#" + kind
}
