package dynamo

import (
	"context"
	"fmt"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MessageRepo stores the append-only message log, one item per message keyed
// (matchId, messageId). Appends are independent inserts; ordering is resolved
// at read time from (createdAt, sequence).
type MessageRepo struct {
	Dynamo *DynamoService
}

func NewMessageRepo(ds *DynamoService) *MessageRepo {
	return &MessageRepo{Dynamo: ds}
}

func (r *MessageRepo) Put(ctx context.Context, msg *models.Message) error {
	return r.Dynamo.PutItem(ctx, models.MessagesTable, msg)
}

func (r *MessageRepo) Get(ctx context.Context, matchID, messageID string) (*models.Message, error) {
	key := map[string]types.AttributeValue{
		"matchId":   &types.AttributeValueMemberS{Value: matchID},
		"messageId": &types.AttributeValueMemberS{Value: messageID},
	}
	item, err := r.Dynamo.GetItem(ctx, models.MessagesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var msg models.Message
	if err := attributevalue.UnmarshalMap(item, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepo) ListByMatch(ctx context.Context, matchID string) ([]models.Message, error) {
	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := r.Dynamo.QueryAllItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}
