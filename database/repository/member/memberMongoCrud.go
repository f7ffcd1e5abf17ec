package memberRepo

import (
	"errors"
	"fmt"
	"time"

	"membership/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrMemberNotFound is returned when a lookup does not resolve to a row.
var ErrMemberNotFound = errors.New("member not found")

// Create inserts a new member document.
func (r *MongoMemberRepo) Create(member *models.Member) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetByEmail retrieves a member by email address.
func (r *MongoMemberRepo) GetByEmail(email string) (*models.Member, error) {
	return r.findOne(bson.M{"email": email}, "email "+email)
}

// GetByVerificationHash retrieves a member by the sign-up hash.
func (r *MongoMemberRepo) GetByVerificationHash(hash string) (*models.Member, error) {
	return r.findOne(bson.M{"verificationHash": hash}, "verification hash")
}

// GetByRenewalHash retrieves a member by the renewal hash.
func (r *MongoMemberRepo) GetByRenewalHash(hash string) (*models.Member, error) {
	return r.findOne(bson.M{"renewalHash": hash}, "renewal hash")
}

func (r *MongoMemberRepo) findOne(filter bson.M, what string) (*models.Member, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var member models.Member
	err := r.coll.FindOne(ctx, filter).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, what)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member by %s: %w", what, err)
	}
	return &member, nil
}

// UpdateByEmail modifies the details of an existing member record.
func (r *MongoMemberRepo) UpdateByEmail(member *models.Member) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"firstName":            member.FirstName,
		"lastName":             member.LastName,
		"gender":               member.Gender,
		"dateOfBirth":          member.DateOfBirth,
		"primaryPhoneNumber":   member.PrimaryPhoneNumber,
		"secondaryPhoneNumber": member.SecondaryPhoneNumber,
		"residentialAddress":   member.ResidentialAddress,
		"postalAddress":        member.PostalAddress,
		"membershipType":       member.MembershipType,
		"updatedAt":            time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"email": member.Email}, update)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", member.Email, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: email %s", ErrMemberNotFound, member.Email)
	}
	return nil
}

// SetVerified stamps the verification time on a member.
func (r *MongoMemberRepo) SetVerified(id string, verifiedAt time.Time) error {
	return r.setField(id, "verified", verifiedAt)
}

// SetLastRenewal stamps the renewal date on a member.
func (r *MongoMemberRepo) SetLastRenewal(id string, lastRenewal string) error {
	return r.setField(id, "lastRenewal", lastRenewal)
}

// SetRenewalHash stores a fresh single-use renewal token.
func (r *MongoMemberRepo) SetRenewalHash(id string, hash string) error {
	return r.setField(id, "renewalHash", hash)
}

// SetRenewalNotifiedOn records the date a renewal reminder went out.
func (r *MongoMemberRepo) SetRenewalNotifiedOn(id string, notifiedOn string) error {
	return r.setField(id, "renewalNotifiedOn", notifiedOn)
}

func (r *MongoMemberRepo) setField(id, field string, value interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		field:       value,
		"updatedAt": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: id %s", ErrMemberNotFound, id)
	}
	return nil
}
