package dynamo

import (
	"context"
	"fmt"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationRepo stores notifications keyed (toUid, notificationId).
type NotificationRepo struct {
	Dynamo *DynamoService
}

func NewNotificationRepo(ds *DynamoService) *NotificationRepo {
	return &NotificationRepo{Dynamo: ds}
}

func (r *NotificationRepo) Put(ctx context.Context, n *models.Notification) error {
	return r.Dynamo.PutItem(ctx, models.NotificationsTable, n)
}

func (r *NotificationRepo) ListByUser(ctx context.Context, toUID string) ([]models.Notification, error) {
	keyCondition := "toUid = :toUid"
	expressionValues := map[string]types.AttributeValue{
		":toUid": &types.AttributeValueMemberS{Value: toUID},
	}

	items, err := r.Dynamo.QueryItems(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, toUID, notificationID string) error {
	updateExpression := "SET #read = :true"
	key := map[string]types.AttributeValue{
		"toUid":          &types.AttributeValueMemberS{Value: toUID},
		"notificationId": &types.AttributeValueMemberS{Value: notificationID},
	}
	expressionValues := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	expressionNames := map[string]string{
		"#read": "read",
	}

	_, err := r.Dynamo.UpdateItem(ctx, models.NotificationsTable, updateExpression, key, expressionValues, expressionNames)
	return err
}
