package memberRepo

import (
	"fmt"
	"time"

	"membership/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllSummaries lists members with the fields the admin surface shows.
func (r *MongoMemberRepo) GetAllSummaries() ([]models.MemberSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	projection := bson.M{
		"id":             1,
		"firstName":      1,
		"lastName":       1,
		"membershipType": 1,
		"verified":       1,
		"residentialAddress.postcode": 1,
		"residentialAddress.state":    1,
		"residentialAddress.country":  1,
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.MemberSummary
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode member list: %w", err)
	}
	return members, nil
}

// FindExpiringOn returns members whose lastRenewal matches the given date
// and who were not already reminded on notifiedOn. Matching is exact: a
// member renewed a day earlier or later is not in the cohort.
func (r *MongoMemberRepo) FindExpiringOn(lastRenewal string, notifiedOn string) ([]models.Member, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"lastRenewal":       lastRenewal,
		"renewalNotifiedOn": bson.M{"$ne": notifiedOn},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring memberships: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode expiring memberships: %w", err)
	}
	return members, nil
}
