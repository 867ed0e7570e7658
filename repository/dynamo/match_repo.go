package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"buzzme_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchRepo stores matches under their deterministic pair id.
type MatchRepo struct {
	Dynamo *DynamoService
}

func NewMatchRepo(ds *DynamoService) *MatchRepo {
	return &MatchRepo{Dynamo: ds}
}

func (r *MatchRepo) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	return r.Dynamo.PutItemIfNotExists(ctx, models.MatchesTable, match, "matchId")
}

func (r *MatchRepo) Get(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := r.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func (r *MatchRepo) ListByUser(ctx context.Context, uid string) ([]models.Match, error) {
	var matches []models.Match
	err := r.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		usersAttr, ok := item["users"]
		if !ok {
			return false
		}
		users, ok := usersAttr.(*types.AttributeValueMemberL)
		if !ok {
			return false
		}
		for _, u := range users.Value {
			if s, ok := u.(*types.AttributeValueMemberS); ok && s.Value == uid {
				return true
			}
		}
		return false
	}, &matches)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// RecordActivity bumps the per-match message counter with an atomic ADD and
// refreshes the activity timestamp and preview in the same update, so two
// concurrent appenders can never observe the same sequence.
func (r *MatchRepo) RecordActivity(ctx context.Context, matchID, at string, preview *models.MessagePreview) (int64, error) {
	previewAttr, err := attributevalue.Marshal(preview)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message preview: %w", err)
	}

	updateExpression := "SET lastActivityAt = :at, lastMessage = :preview ADD seq :one"
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionValues := map[string]types.AttributeValue{
		":at":      &types.AttributeValueMemberS{Value: at},
		":preview": previewAttr,
		":one":     &types.AttributeValueMemberN{Value: "1"},
	}

	attrs, err := r.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return 0, err
	}

	seqAttr, ok := attrs["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("match '%s' returned no sequence counter", matchID)
	}
	seq, err := strconv.ParseInt(seqAttr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence counter for match '%s': %w", matchID, err)
	}
	return seq, nil
}
