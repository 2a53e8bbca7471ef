package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slimmom/diet-service/internal/core/domain"
)

const collectionSessions = "sessions"

// SessionRepository implements ports.SessionRepository on the sessions collection.
type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

type mongoSession struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	UserID                 primitive.ObjectID `bson:"userId"`
	AccessToken            string             `bson:"accessToken"`
	RefreshToken           string             `bson:"refreshToken"`
	AccessTokenValidUntil  time.Time          `bson:"accessTokenValidUntil"`
	RefreshTokenValidUntil time.Time          `bson:"refreshTokenValidUntil"`
	CreatedAt              time.Time          `bson:"createdAt"`
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	userID, err := primitive.ObjectIDFromHex(s.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert session: user id %q: %w", s.UserID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSession{
		UserID:                 userID,
		AccessToken:            s.AccessToken,
		RefreshToken:           s.RefreshToken,
		AccessTokenValidUntil:  s.AccessTokenValidUntil.UTC(),
		RefreshTokenValidUntil: s.RefreshTokenValidUntil.UTC(),
		CreatedAt:              s.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert session: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *SessionRepository) FindByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.col.FindOne(ctx, bson.M{"accessToken": accessToken}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return ms.toDomain(), nil
}

// ConsumeByRefreshToken deletes and returns the session in one
// findOneAndDelete, so concurrent callers cannot both redeem it.
func (r *SessionRepository) ConsumeByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.col.FindOneAndDelete(ctx, bson.M{"refreshToken": refreshToken}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("consume session: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SessionRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return r.delete(ctx, bson.M{"_id": oid}, false)
}

func (r *SessionRepository) DeleteByRefreshToken(ctx context.Context, refreshToken string) error {
	return r.delete(ctx, bson.M{"refreshToken": refreshToken}, false)
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	return r.delete(ctx, bson.M{"userId": oid}, true)
}

// EnsureIndexes creates the token lookup indexes and a TTL index that lets
// MongoDB drop sessions once their refresh token has expired.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "accessToken", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "refreshToken", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "refreshTokenValidUntil", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("sessions indexes: %w", err)
	}
	return nil
}

func (r *SessionRepository) delete(ctx context.Context, filter bson.M, many bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var err error
	if many {
		_, err = r.col.DeleteMany(ctx, filter)
	} else {
		_, err = r.col.DeleteOne(ctx, filter)
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (ms *mongoSession) toDomain() *domain.Session {
	return &domain.Session{
		ID:                     ms.ID.Hex(),
		UserID:                 ms.UserID.Hex(),
		AccessToken:            ms.AccessToken,
		RefreshToken:           ms.RefreshToken,
		AccessTokenValidUntil:  ms.AccessTokenValidUntil.UTC(),
		RefreshTokenValidUntil: ms.RefreshTokenValidUntil.UTC(),
		CreatedAt:              ms.CreatedAt.UTC(),
	}
}
