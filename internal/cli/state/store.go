package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/models"
)

// MemoryPath opens a store that lives only as long as the process
const MemoryPath = ":memory:"

// Store is the client state container. It owns the session state of every
// server the CLI talks to, together with the tokens backing it.
type Store struct {
	db     *gorm.DB
	tokens auth.TokenStore
	logger zerolog.Logger

	mu      sync.Mutex
	onReset []func(server string)
}

// Open opens (and migrates) the state database at path
func Open(path string, tokens auth.TokenStore, zlog zerolog.Logger) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and shared
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.SessionState{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}

	return &Store{
		db:     db,
		tokens: tokens,
		logger: zlog,
	}, nil
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			SlowThreshold:             200 * time.Millisecond,
		},
	)
}

// Close releases the database
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OnReset registers fn to be called after every Reset
func (s *Store) OnReset(fn func(server string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReset = append(s.onReset, fn)
}

// Current returns the session state of server. A server that was never
// signed in to yields an unauthenticated session.
func (s *Store) Current(ctx context.Context, server string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.find(ctx, server)
	if err != nil {
		return Session{}, err
	}
	if row == nil {
		return Session{Server: server}, nil
	}
	return fromModel(row), nil
}

// SignIn stores tokens and moves server to Authenticated
func (s *Store) SignIn(ctx context.Context, server string, tokens auth.Tokens, claims auth.Claims) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.SaveTokens(server, tokens); err != nil {
		return Session{}, err
	}

	row, err := s.find(ctx, server)
	if err != nil {
		return Session{}, err
	}
	if row == nil {
		row = &models.SessionState{Server: server}
	}

	row.Authenticated = true
	row.UserType = claims.UserType
	row.Subject = claims.UserID
	row.ExpiresAt = claims.ExpiresAt

	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return Session{}, fmt.Errorf("failed to save session state: %w", err)
	}

	s.logger.Debug().Str("server", server).Str("user_type", claims.UserType).Msg("Session authenticated")
	return fromModel(row), nil
}

// SignOut moves server to Unauthenticated. Signing out of a server that
// holds no session is a no-op.
func (s *Store) SignOut(ctx context.Context, server string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.WithContext(ctx).
		Model(&models.SessionState{}).
		Where("server = ?", server).
		Update("authenticated", false)
	if result.Error != nil {
		return fmt.Errorf("failed to clear session state: %w", result.Error)
	}

	s.logger.Debug().Str("server", server).Msg("Session unauthenticated")
	return nil
}

// Reset discards all client state held for server: the stored tokens and
// the persisted session. Reset subscribers run after the state is gone.
func (s *Store) Reset(ctx context.Context, server string) error {
	s.mu.Lock()
	var errs []error
	if err := s.tokens.DeleteTokens(server); err != nil {
		errs = append(errs, err)
	}
	if err := s.db.WithContext(ctx).Where("server = ?", server).Delete(&models.SessionState{}).Error; err != nil {
		errs = append(errs, fmt.Errorf("failed to delete session state: %w", err))
	}
	subscribers := append([]func(string){}, s.onReset...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(server)
	}

	s.logger.Debug().Str("server", server).Msg("Client state reset")
	return errors.Join(errs...)
}

func (s *Store) find(ctx context.Context, server string) (*models.SessionState, error) {
	var row models.SessionState
	err := s.db.WithContext(ctx).Where("server = ?", server).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return &row, nil
}

func fromModel(row *models.SessionState) Session {
	session := Session{
		Server:    row.Server,
		UserType:  row.UserType,
		Subject:   row.Subject,
		ExpiresAt: row.ExpiresAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Authenticated {
		session.Status = Authenticated
	}
	return session
}
