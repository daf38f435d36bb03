package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/ports/api"
	svc "campusportal/internal/portal/ports/services"
	"campusportal/pkg/logger"
)

const (
	methodEstablish = "Establish"
	methodRotate    = "Rotate"
	methodCurrent   = "Current"
	methodRefresh   = "Refresh"
	methodDestroy   = "Destroy"

	msgSessionEstablished  = "session established"
	msgSessionRotated      = "session id rotated"
	msgSessionRefreshed    = "session identity refreshed"
	msgSessionDestroyed    = "session destroyed"
	msgSessionUndecodable  = "session record is undecodable, treating as anonymous"
	msgSecretFieldsRemoved = "secret-shaped fields removed from session record"

	msgErrEncodeSession     = "failed to encode session record"
	msgErrStoreSession      = "failed to store session record"
	msgErrLoadSession       = "failed to load session record"
	msgErrDestroyOldSession = "failed to destroy previous session"

	errCtxEncodingSession  = "encoding session record"
	errCtxStoringSession   = "storing session record"
	errCtxLoadingSession   = "loading session record"
	errCtxReplacingSession = "replacing session record"
	errCtxDeletingSession  = "deleting session record"
)

var (
	errNilIdentity = errors.New("identity cannot be nil")

	reDigest = regexp.MustCompile(`^(\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}|\$argon2(id|i|d)\$v=\d+\$m=\d+,t=\d+,p=\d+\$[A-Za-z0-9+/]+\$[A-Za-z0-9+/]+)$`)
)

// SessionUseCaseImpl хранит минимальную проекцию пользователя в сессии.
type SessionUseCaseImpl struct {
	store svc.SessionStore
}

// NewSessionUseCase создает менеджер жизненного цикла сессии.
func NewSessionUseCase(store svc.SessionStore) api.SessionUseCase {
	return &SessionUseCaseImpl{store: store}
}

// NewSessionID выдает новый непредсказуемый идентификатор сессии.
func (s *SessionUseCaseImpl) NewSessionID() string {
	return uuid.NewString()
}

// Establish сохраняет проекцию пользователя под идентификатором сессии.
func (s *SessionUseCaseImpl) Establish(ctx context.Context, sessionID string, identity *entities.Identity) error {
	log := logger.Log(ctx).With(zap.String("method", methodEstablish))

	if sessionID == "" {
		return entities.ErrEmptySessionID
	}

	record, err := s.encode(ctx, identity)
	if err != nil {
		log.Error(ctx, msgErrEncodeSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxEncodingSession, err)
	}

	if err := s.store.Save(ctx, sessionID, record); err != nil {
		log.Error(ctx, msgErrStoreSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringSession, err)
	}

	log.Debug(ctx, msgSessionEstablished, zap.Int64("user_id", identity.ID))
	return nil
}

// Rotate выдает новый идентификатор, связывает с ним пользователя и
// уничтожает прежнюю сессию. Ошибка уничтожения прежней сессии не фатальна.
func (s *SessionUseCaseImpl) Rotate(ctx context.Context, previousID string, identity *entities.Identity) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRotate))

	sessionID := s.NewSessionID()
	if err := s.Establish(ctx, sessionID, identity); err != nil {
		return "", err
	}

	if previousID != "" && previousID != sessionID {
		if err := s.store.Delete(ctx, previousID); err != nil {
			log.Warn(ctx, msgErrDestroyOldSession, zap.Error(err))
		}
	}

	log.Debug(ctx, msgSessionRotated)
	return sessionID, nil
}

// Current возвращает владельца сессии или nil для анонимного посетителя.
func (s *SessionUseCaseImpl) Current(ctx context.Context, sessionID string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrent))

	if sessionID == "" {
		return nil, nil
	}

	record, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, nil
		}
		log.Error(ctx, msgErrLoadSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingSession, err)
	}

	var identity entities.Identity
	if err := json.Unmarshal(record, &identity); err != nil || identity.ID == 0 {
		log.Warn(ctx, msgSessionUndecodable, zap.Error(err))
		return nil, nil
	}

	return &identity, nil
}

// Refresh заменяет проекцию пользователя, сохраняя срок жизни сессии.
func (s *SessionUseCaseImpl) Refresh(ctx context.Context, sessionID string, identity *entities.Identity) error {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))

	if sessionID == "" {
		return entities.ErrEmptySessionID
	}

	record, err := s.encode(ctx, identity)
	if err != nil {
		log.Error(ctx, msgErrEncodeSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxEncodingSession, err)
	}

	if err := s.store.Replace(ctx, sessionID, record); err != nil {
		return fmt.Errorf("%s: %w", errCtxReplacingSession, err)
	}

	log.Debug(ctx, msgSessionRefreshed, zap.Int64("user_id", identity.ID))
	return nil
}

// Destroy удаляет сессию вместе с неотправленными сообщениями.
func (s *SessionUseCaseImpl) Destroy(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDestroy))

	if sessionID == "" {
		return nil
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingSession, err)
	}

	log.Debug(ctx, msgSessionDestroyed)
	return nil
}

// encode кодирует проекцию и вычищает поля, похожие на пароль или его хэш.
func (s *SessionUseCaseImpl) encode(ctx context.Context, identity *entities.Identity) ([]byte, error) {
	if identity == nil {
		return nil, errNilIdentity
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	if removed := scrubSecrets(fields); len(removed) > 0 {
		logger.Log(ctx).Error(ctx, msgSecretFieldsRemoved,
			zap.Strings("fields", removed),
			zap.Error(entities.ErrSessionSecretLeak))
	}

	return json.Marshal(fields)
}

func scrubSecrets(fields map[string]any) []string {
	var removed []string
	for key, value := range fields {
		if isSecretKey(key) {
			delete(fields, key)
			removed = append(removed, key)
			continue
		}
		switch v := value.(type) {
		case string:
			if reDigest.MatchString(v) {
				delete(fields, key)
				removed = append(removed, key)
			}
		case map[string]any:
			for _, nested := range scrubSecrets(v) {
				removed = append(removed, key+"."+nested)
			}
		}
	}
	sort.Strings(removed)
	return removed
}

func isSecretKey(key string) bool {
	k := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(key))
	return strings.Contains(k, "password") || k == "hash" || k == "passwd"
}
