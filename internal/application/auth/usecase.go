package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/jwt"
	"github.com/jhoicas/biciros/pkg/logger"
)

// SessionKey clave del token de la sesión del dispositivo en el almacén de preferencias.
const SessionKey = "@biciros_session"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Session usuario autenticado y su token.
type Session struct {
	Token string
	User  entity.User // sin PasswordHash
}

// Profile perfil visible del usuario de la sesión.
func (s *Session) Profile() entity.Profile {
	return s.User.Profile()
}

// AuthUseCase sesión del dispositivo: login, logout y restauración al arrancar.
type AuthUseCase struct {
	userRepo repository.UserRepository
	prefs    repository.PreferenceStore
	jwtCfg   JWTConfig
	log      *logger.Logger

	mu      sync.RWMutex
	current *Session
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, prefs repository.PreferenceStore, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		prefs:    prefs,
		jwtCfg:   jwtCfg,
		log:      logger.OrNop(log).Component("auth"),
	}
}

// Login verifica email/password, genera JWT, lo guarda como sesión del dispositivo y la devuelve.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.prefs.Set(ctx, SessionKey, token); err != nil {
		return nil, err
	}
	sess := newSession(token, user)
	uc.mu.Lock()
	uc.current = sess
	uc.mu.Unlock()
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("sesión iniciada")
	return sess.clone(), nil
}

// Logout cierra la sesión del dispositivo. Sin sesión devuelve domain.ErrNoSession.
// Si no se puede borrar el token guardado, la sesión en memoria ya quedó cerrada y el error se devuelve.
func (uc *AuthUseCase) Logout(ctx context.Context) (*Session, error) {
	uc.mu.Lock()
	prev := uc.current
	uc.current = nil
	uc.mu.Unlock()
	if prev == nil {
		return nil, domain.ErrNoSession
	}
	if err := uc.prefs.Remove(ctx, SessionKey); err != nil {
		return prev, err
	}
	uc.log.Info().Str("user_id", prev.User.ID).Msg("sesión cerrada")
	return prev, nil
}

// Restore recupera la sesión guardada si el token sigue vigente y el usuario sigue activo.
// Un token inválido o vencido se descarta. Devuelve nil si no hay sesión que restaurar.
func (uc *AuthUseCase) Restore(ctx context.Context) (*Session, error) {
	token, ok, err := uc.prefs.Get(ctx, SessionKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("error leyendo la sesión guardada")
		return nil, nil
	}
	if !ok || token == "" {
		return nil, nil
	}
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		uc.log.Info().Err(err).Msg("sesión guardada inválida; se descarta")
		_ = uc.prefs.Remove(ctx, SessionKey)
		return nil, nil
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		_ = uc.prefs.Remove(ctx, SessionKey)
		return nil, nil
	}
	sess := newSession(token, user)
	uc.mu.Lock()
	uc.current = sess
	uc.mu.Unlock()
	return sess.clone(), nil
}

// Current sesión actual o nil.
func (uc *AuthUseCase) Current() *Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.current == nil {
		return nil
	}
	return uc.current.clone()
}

// Authenticate valida un token de API y devuelve el usuario vigente (middleware HTTP).
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	user.PasswordHash = ""
	return user, nil
}

func newSession(token string, u *entity.User) *Session {
	user := *u
	user.PasswordHash = ""
	return &Session{Token: token, User: user}
}

func (s *Session) clone() *Session {
	cp := *s
	return &cp
}
