package dynamo

import (
	"context"
	"fmt"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SignalRepo stores interest signals keyed (fromUid, toUid#kind), which makes
// a repeated signal from the same side a conditional-put failure rather than a
// duplicate row.
type SignalRepo struct {
	Dynamo *DynamoService
}

func NewSignalRepo(ds *DynamoService) *SignalRepo {
	return &SignalRepo{Dynamo: ds}
}

func (r *SignalRepo) PutIfAbsent(ctx context.Context, sig *models.InterestSignal) (bool, error) {
	sig.TargetKey = models.SignalTargetKey(sig.ToUID, sig.Kind)
	return r.Dynamo.PutItemIfNotExists(ctx, models.InterestSignalsTable, sig, "targetKey")
}

func (r *SignalRepo) Get(ctx context.Context, fromUID, toUID, kind string) (*models.InterestSignal, error) {
	key := map[string]types.AttributeValue{
		"fromUid":   &types.AttributeValueMemberS{Value: fromUID},
		"targetKey": &types.AttributeValueMemberS{Value: models.SignalTargetKey(toUID, kind)},
	}
	item, err := r.Dynamo.GetItem(ctx, models.InterestSignalsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var sig models.InterestSignal
	if err := attributevalue.UnmarshalMap(item, &sig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interest signal: %w", err)
	}
	return &sig, nil
}

func (r *SignalRepo) SetStatus(ctx context.Context, fromUID, toUID, kind, status string) error {
	updateExpression := "SET #status = :status"
	key := map[string]types.AttributeValue{
		"fromUid":   &types.AttributeValueMemberS{Value: fromUID},
		"targetKey": &types.AttributeValueMemberS{Value: models.SignalTargetKey(toUID, kind)},
	}
	expressionValues := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: status},
	}
	expressionNames := map[string]string{
		"#status": "status",
	}

	_, err := r.Dynamo.UpdateItem(ctx, models.InterestSignalsTable, updateExpression, key, expressionValues, expressionNames)
	return err
}
