package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// minTTL keeps already-expired sessions addressable long enough to be
// rejected by the service instead of silently vanishing.
const minTTL = time.Second

// SessionStore implements ports.SessionRepository on Redis.
//
// Key layout:
//
//	session:<id>              JSON session document
//	session:access:<token>    session id
//	session:refresh:<token>   session id
//	session:user:<userId>     set of session ids
//
// Every key expires together with the refresh token.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

type redisSession struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"userId"`
	AccessToken            string    `json:"accessToken"`
	RefreshToken           string    `json:"refreshToken"`
	AccessTokenValidUntil  time.Time `json:"accessTokenValidUntil"`
	RefreshTokenValidUntil time.Time `json:"refreshTokenValidUntil"`
	CreatedAt              time.Time `json:"createdAt"`
}

func (s *SessionStore) Create(ctx context.Context, in *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := redisSession{
		ID:                     uuid.NewString(),
		UserID:                 in.UserID,
		AccessToken:            in.AccessToken,
		RefreshToken:           in.RefreshToken,
		AccessTokenValidUntil:  in.AccessTokenValidUntil.UTC(),
		RefreshTokenValidUntil: in.RefreshTokenValidUntil.UTC(),
		CreatedAt:              in.CreatedAt.UTC(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	ttl := doc.RefreshTokenValidUntil.Sub(s.now())
	if ttl < minTTL {
		ttl = minTTL
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, sessionKey(doc.ID), raw, ttl)
		p.Set(ctx, accessKey(doc.AccessToken), doc.ID, ttl)
		p.Set(ctx, refreshKey(doc.RefreshToken), doc.ID, ttl)
		p.SAdd(ctx, userKey(doc.UserID), doc.ID)
		p.ExpireGT(ctx, userKey(doc.UserID), ttl)
		p.ExpireNX(ctx, userKey(doc.UserID), ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *SessionStore) FindByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := s.client.Get(ctx, accessKey(accessToken)).Result()
	if err != nil {
		return nil, notFound("find session", err)
	}
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *SessionStore) ConsumeByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// GETDEL hands the id to exactly one caller.
	id, err := s.client.GetDel(ctx, refreshKey(refreshToken)).Result()
	if err != nil {
		return nil, notFound("consume session", err)
	}
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.remove(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *SessionStore) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.deleteByID(ctx, id)
}

func (s *SessionStore) DeleteByRefreshToken(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := s.client.Get(ctx, refreshKey(refreshToken)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return s.deleteByID(ctx, id)
}

func (s *SessionStore) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}
	for _, id := range ids {
		if err := s.deleteByID(ctx, id); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, userKey(userID)).Err()
}

func (s *SessionStore) deleteByID(ctx context.Context, id string) error {
	doc, err := s.load(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, doc)
}

func (s *SessionStore) load(ctx context.Context, id string) (*redisSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		return nil, notFound("load session", err)
	}
	var doc redisSession
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &doc, nil
}

func (s *SessionStore) remove(ctx context.Context, doc *redisSession) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, sessionKey(doc.ID), accessKey(doc.AccessToken), refreshKey(doc.RefreshToken))
		p.SRem(ctx, userKey(doc.UserID), doc.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove session %s: %w", doc.ID, err)
	}
	return nil
}

func notFound(op string, err error) error {
	if errors.Is(err, redis.Nil) {
		return domain.ErrSessionNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (rs *redisSession) toDomain() *domain.Session {
	return &domain.Session{
		ID:                     rs.ID,
		UserID:                 rs.UserID,
		AccessToken:            rs.AccessToken,
		RefreshToken:           rs.RefreshToken,
		AccessTokenValidUntil:  rs.AccessTokenValidUntil,
		RefreshTokenValidUntil: rs.RefreshTokenValidUntil,
		CreatedAt:              rs.CreatedAt,
	}
}

func sessionKey(id string) string    { return "session:" + id }
func accessKey(token string) string  { return "session:access:" + token }
func refreshKey(token string) string { return "session:refresh:" + token }
func userKey(userID string) string   { return "session:user:" + userID }
