package biz

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/infra/pool"
	"github.com/kart-io/atlas/pkg/security/auth"
	"github.com/kart-io/atlas/pkg/security/session"
	storepkg "github.com/kart-io/atlas/pkg/store"
	"github.com/kart-io/atlas/pkg/utils/id"
)

// AuthService handles authentication business logic: credential checks,
// token issuance, and the server-side session lifecycle.
type AuthService struct {
	jwtAuth   auth.Authenticator
	store     store.Factory
	sessions  *session.Manager
	superRole string

	// audit executes login log writes off the request path. Optional;
	// writes run inline when absent or when the pool rejects a task.
	audit *pool.Pool
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtAuth auth.Authenticator, store store.Factory, sessions *session.Manager, superuserRole string, audit *pool.Pool) *AuthService {
	return &AuthService{
		jwtAuth:   jwtAuth,
		store:     store,
		sessions:  sessions,
		superRole: superuserRole,
		audit:     audit,
	}
}

// Login authenticates a user, opens a server-side session, and returns a
// token carrying the session id.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest, clientIP, userAgent string) (*model.LoginResponse, error) {
	user, err := s.store.Users().Get(ctx, req.Username)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			// 不区分“用户不存在”和“密码错误”，避免用户名探测
			s.auditLogin(req.Username, "", clientIP, userAgent, 0, "invalid credentials")
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != 1 {
		s.auditLogin(user.Username, strconv.FormatUint(user.ID, 10), clientIP, userAgent, 0, "user disabled")
		return nil, errors.ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.auditLogin(user.Username, strconv.FormatUint(user.ID, 10), clientIP, userAgent, 0, "invalid credentials")
		return nil, errors.ErrInvalidCredentials
	}

	roles, err := s.store.Roles().ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(roles))
	superuser := false
	for _, r := range roles {
		codes = append(codes, r.Code)
		if r.Code == s.superRole {
			superuser = true
		}
	}

	sessionID := id.NewULID()
	userID := strconv.FormatUint(user.ID, 10)

	token, err := s.jwtAuth.Sign(ctx, userID,
		auth.WithSessionID(sessionID),
		auth.WithExtra(map[string]interface{}{
			"username": user.Username,
		}),
	)
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}

	s.sessions.Create(sessionID, userID, codes, superuser)
	s.auditLogin(user.Username, userID, clientIP, userAgent, 1, "")

	return &model.LoginResponse{
		AccessToken: token.GetAccessToken(),
		TokenType:   token.GetTokenType(),
		ExpiresIn:   token.GetExpiresIn(),
		ExpiresAt:   token.GetExpiresAt(),
		UserID:      user.ID,
		Username:    user.Username,
		Roles:       codes,
		Superuser:   superuser,
	}, nil
}

// Logout revokes the token and drops its server-side session. A token
// that no longer verifies is treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtAuth.Verify(ctx, tokenString)
	if err != nil {
		return nil
	}
	if sid := claims.SessionID(); sid != "" {
		s.sessions.Remove(sid)
	}
	return s.jwtAuth.Revoke(ctx, tokenString)
}

// RefreshToken exchanges a valid token for a fresh one. The session id
// travels in the extra claims, so the server-side session survives the
// exchange untouched.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*model.RefreshResponse, error) {
	token, err := s.jwtAuth.Refresh(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &model.RefreshResponse{
		AccessToken: token.GetAccessToken(),
		TokenType:   token.GetTokenType(),
		ExpiresIn:   token.GetExpiresIn(),
		ExpiresAt:   token.GetExpiresAt(),
	}, nil
}

// LoginLogs lists the login audit trail, newest first.
func (s *AuthService) LoginLogs(ctx context.Context, opts ...storepkg.Option) (int64, []*model.LoginLog, error) {
	return s.store.LoginLogs().List(ctx, opts...)
}

// auditLogin 记录登录流水。审计失败不阻断登录，只打日志。
func (s *AuthService) auditLogin(username, userID, ip, userAgent string, status int, message string) {
	entry := &model.LoginLog{
		UserID:    userID,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Status:    status,
		Message:   message,
	}
	write := func() {
		if err := s.store.LoginLogs().Create(context.Background(), entry); err != nil {
			logger.Warnw("Failed to write login log", "username", username, "error", err)
		}
	}
	if s.audit != nil {
		if err := s.audit.Submit(write); err == nil {
			return
		}
	}
	write()
}
