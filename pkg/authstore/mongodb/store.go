// Package mongodb implements auth.UserStore on a MongoDB collection with a
// unique index on email and a secondary lookup index on the provider pair.
// Duplicate-key errors from the unique index surface as auth.ErrEmailTaken,
// which is what lets the account linker resolve concurrent-create races.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brightpath/authkit/pkg/auth"
)

const usersCollection = "users"

// Store is a MongoDB-backed user store.
type Store struct {
	coll *mongo.Collection
}

// New creates the store and ensures its indexes.
func New(ctx context.Context, db *mongo.Database) (*Store, error) {
	coll := db.Collection(usersCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "provider", Value: 1},
				{Key: "provider_account_id", Value: 1},
			},
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}

	return &Store{coll: coll}, nil
}

type userDoc struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	Name              string        `bson:"name"`
	FirstName         string        `bson:"first_name"`
	LastName          string        `bson:"last_name"`
	Email             string        `bson:"email"`
	PasswordHash      []byte        `bson:"password_hash,omitempty"`
	Image             string        `bson:"image,omitempty"`
	Provider          string        `bson:"provider"`
	ProviderAccountID string        `bson:"provider_account_id,omitempty"`
	EmailVerifiedAt   *time.Time    `bson:"email_verified_at,omitempty"`
	CreatedAt         time.Time     `bson:"created_at"`
	UpdatedAt         time.Time     `bson:"updated_at"`
}

func (d *userDoc) toUser() *auth.User {
	return &auth.User{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		Image:             d.Image,
		Provider:          d.Provider,
		ProviderAccountID: d.ProviderAccountID,
		EmailVerifiedAt:   d.EmailVerifiedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (s *Store) FindByEmailOrProvider(ctx context.Context, email, provider, providerAccountID string) (*auth.User, error) {
	clauses := bson.A{bson.M{"email": email}}
	if provider != "" && providerAccountID != "" {
		clauses = append(clauses, bson.M{
			"provider":            provider,
			"provider_account_id": providerAccountID,
		})
	}
	return s.findOne(ctx, bson.M{"$or": clauses}, nil)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, nil)
}

func (s *Store) FindByID(ctx context.Context, id string) (*auth.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}
	// Hydration path: keep the hash out of the result entirely.
	projection := options.FindOne().SetProjection(bson.M{"password_hash": 0})
	return s.findOne(ctx, bson.M{"_id": objectID}, projection)
}

func (s *Store) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptionsBuilder) (*auth.User, error) {
	var result *mongo.SingleResult
	if opts != nil {
		result = s.coll.FindOne(ctx, filter, opts)
	} else {
		result = s.coll.FindOne(ctx, filter)
	}
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	var doc userDoc
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

func (s *Store) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	now := time.Now()
	doc := userDoc{
		Name:              user.Name,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Image:             user.Image,
		Provider:          user.Provider,
		ProviderAccountID: user.ProviderAccountID,
		EmailVerifiedAt:   user.EmailVerifiedAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	result, err := s.coll.InsertOne(ctx, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, auth.ErrEmailTaken
		}
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID

	return doc.toUser(), nil
}

func (s *Store) Update(ctx context.Context, id string, params auth.UpdateUserParams) (*auth.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}
	if params.Provider != nil {
		updateMap["provider"] = *params.Provider
	}
	if params.ProviderAccountID != nil {
		updateMap["provider_account_id"] = *params.ProviderAccountID
	}
	if len(updateMap) == 0 {
		return s.findOne(ctx, bson.M{"_id": objectID}, nil)
	}
	updateMap["updated_at"] = time.Now()

	result := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	var doc userDoc
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

func (s *Store) ValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

// Compile-time interface assertion
var _ auth.UserStore = (*Store)(nil)
