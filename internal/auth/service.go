package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "operator-session||"
	tokensSetKey     = "operator-sessions"
	tokenBytes       = 35
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

type usersRepo interface {
	Get(ctx context.Context, username string) (*User, error)
	Add(ctx context.Context, username, passwordHash string) (int, error)
}

// SessionEndListener is told about every session that ends, by logout or expiry.
type SessionEndListener interface {
	SessionEnded(ctx context.Context, sessionToken string) error
}

type NewServiceParams struct {
	RedisClient *redis.Client
	UsersRepo   usersRepo
	TTL         time.Duration
	Clock       calendar.Clock
}

type Service struct {
	redisClient *redis.Client
	usersRepo   usersRepo
	ttl         time.Duration
	clock       calendar.Clock

	listenersMutex      sync.RWMutex
	sessionEndListeners []SessionEndListener

	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(params NewServiceParams) *Service {
	if params.TTL <= 0 {
		params.TTL = DefaultTTL
	}
	if params.Clock == nil {
		params.Clock = calendar.SystemClock{}
	}
	return &Service{
		redisClient:    params.RedisClient,
		usersRepo:      params.UsersRepo,
		ttl:            params.TTL,
		clock:          params.Clock,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) OnSessionEnd(l SessionEndListener) {
	s.listenersMutex.Lock()
	defer s.listenersMutex.Unlock()
	s.sessionEndListeners = append(s.sessionEndListeners, l)
}

func (s *Service) Register(ctx context.Context, creds Credentials) (int, error) {
	if creds.Username == "" || creds.Password == "" {
		return 0, errors.New("register: username and password are required")
	}
	hash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.usersRepo.Add(ctx, creds.Username, hash)
}

func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	user, err := s.usersRepo.Get(ctx, creds.Username)
	if err != nil {
		return "", fmt.Errorf("login %s: %w", creds.Username, err)
	}
	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	token, err := s.RandStringFunc(tokenBytes)
	if err != nil {
		return "", err
	}

	sessionValue := fmt.Sprintf("%d:%d", user.ID, s.clock.Now().Unix())
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+token, sessionValue, 0).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	log.Debugf("auth service, operator %d logged in", user.ID)
	return token, nil
}

// Logout returns false if there was no such session.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	if _, _, err := s.session(ctx, token); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := s.endSession(ctx, token); err != nil {
		return true, err
	}
	return true, nil
}

// CurrentUser resolves a session token, ErrUnauthenticated when missing or expired.
func (s *Service) CurrentUser(ctx context.Context, token string) (Operator, error) {
	if token == "" {
		return Operator{}, ErrUnauthenticated
	}

	userID, createdAt, err := s.session(ctx, token)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Operator{}, ErrUnauthenticated
		}
		return Operator{}, err
	}
	if s.clock.Now().Sub(createdAt) > s.ttl {
		return Operator{}, fmt.Errorf("%w: session expired", ErrUnauthenticated)
	}

	return Operator{
		ID:    userID,
		Token: token,
	}, nil
}

// ScanAndClean will run through all sessions, check the TTL, and end them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		_, createdAt, err := s.session(ctx, token)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}
		// dangling set member or expired session
		if err != nil || s.clock.Now().Sub(createdAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.endSession(ctx, token); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
		}
	}
	if len(toRemove) > 0 {
		log.Infof("=> auth service, scan and clean removed %d sessions", len(toRemove))
	}
}

func (s *Service) session(ctx context.Context, token string) (int, time.Time, error) {
	value, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	return parseSessionValue(value)
}

// endSession deletes the session and notifies listeners even when redis fails.
func (s *Service) endSession(ctx context.Context, token string) error {
	var err error
	if delErr := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); delErr != nil {
		err = multierr.Append(err, fmt.Errorf("delete session: %w", delErr))
	}

	// remove token from the list of sessions
	if sremErr := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); sremErr != nil {
		err = multierr.Append(err, fmt.Errorf("remove session token: %w", sremErr))
	}

	s.listenersMutex.RLock()
	listeners := make([]SessionEndListener, len(s.sessionEndListeners))
	copy(listeners, s.sessionEndListeners)
	s.listenersMutex.RUnlock()

	for _, l := range listeners {
		err = multierr.Append(err, l.SessionEnded(ctx, token))
	}
	return err
}

func parseSessionValue(value string) (int, time.Time, error) {
	idStr, createdAtStr, found := strings.Cut(value, ":")
	if !found {
		return 0, time.Time{}, fmt.Errorf("malformed session value: %q", value)
	}
	userID, err := strconv.Atoi(idStr)
	if err != nil || userID <= 0 {
		return 0, time.Time{}, fmt.Errorf("malformed session user id: %q", idStr)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
