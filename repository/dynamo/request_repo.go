package dynamo

import (
	"context"
	"fmt"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RequestRepo stores pending friend requests. Resolved requests are deleted,
// so every row in the table is pending by definition.
type RequestRepo struct {
	Dynamo *DynamoService
}

func NewRequestRepo(ds *DynamoService) *RequestRepo {
	return &RequestRepo{Dynamo: ds}
}

func (r *RequestRepo) Create(ctx context.Context, req *models.FriendRequest) error {
	return r.Dynamo.PutItem(ctx, models.FriendRequestsTable, req)
}

func (r *RequestRepo) Get(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	item, err := r.Dynamo.GetItem(ctx, models.FriendRequestsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var req models.FriendRequest
	if err := attributevalue.UnmarshalMap(item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend request: %w", err)
	}
	return &req, nil
}

// FindPending looks the ordered pair up via the fromUid GSI; the table never
// holds more than one pending request per ordered pair.
func (r *RequestRepo) FindPending(ctx context.Context, fromUID, toUID string) (*models.FriendRequest, error) {
	keyCondition := "fromUid = :fromUid"
	expressionValues := map[string]types.AttributeValue{
		":fromUid": &types.AttributeValueMemberS{Value: fromUID},
	}

	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.FriendRequestsTable, models.RequestFromUIDIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		var req models.FriendRequest
		if err := attributevalue.UnmarshalMap(item, &req); err != nil {
			continue
		}
		if req.ToUID == toUID && req.Status == models.RequestStatusPending {
			return &req, nil
		}
	}
	return nil, nil
}

func (r *RequestRepo) ListPendingTo(ctx context.Context, toUID string) ([]models.FriendRequest, error) {
	keyCondition := "toUid = :toUid"
	expressionValues := map[string]types.AttributeValue{
		":toUid": &types.AttributeValueMemberS{Value: toUID},
	}

	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.FriendRequestsTable, models.RequestToUIDIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, err
	}

	var requests []models.FriendRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepo) Delete(ctx context.Context, requestID string) error {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	return r.Dynamo.DeleteItem(ctx, models.FriendRequestsTable, key)
}
