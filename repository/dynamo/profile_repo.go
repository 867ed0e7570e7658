package dynamo

import (
	"context"
	"fmt"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileRepo reads user profiles from the identity directory's table.
type ProfileRepo struct {
	Dynamo *DynamoService
}

func NewProfileRepo(ds *DynamoService) *ProfileRepo {
	return &ProfileRepo{Dynamo: ds}
}

func (r *ProfileRepo) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"uid": &types.AttributeValueMemberS{Value: uid},
	}
	item, err := r.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepo) FindByBuzzID(ctx context.Context, buzzID string) (*models.UserProfile, error) {
	keyCondition := "buzzId = :buzzId"
	expressionValues := map[string]types.AttributeValue{
		":buzzId": &types.AttributeValueMemberS{Value: buzzID},
	}

	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.UserProfilesTable, models.BuzzIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepo) SetLastSeen(ctx context.Context, uid, lastSeen string) error {
	updateExpression := "SET lastSeen = :lastSeen"
	key := map[string]types.AttributeValue{
		"uid": &types.AttributeValueMemberS{Value: uid},
	}
	expressionValues := map[string]types.AttributeValue{
		":lastSeen": &types.AttributeValueMemberS{Value: lastSeen},
	}

	_, err := r.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionValues, nil)
	return err
}
