package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"go-activity-planner/core/config"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	"go-activity-planner/core/utils"
	"go-activity-planner/modules/auth/dto"
	"go-activity-planner/modules/auth/entity"
	"go-activity-planner/modules/auth/repository"
	calsvc "go-activity-planner/modules/calendar/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, *errors.AppError)
}

type AuthService struct {
	repo            repository.UserRepositoryInterface
	calendarService calsvc.CalendarService
}

func NewAuthService(repo repository.UserRepositoryInterface, calendarService calsvc.CalendarService) AuthServiceInterface {
	return &AuthService{
		repo:            repo,
		calendarService: calendarService,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError) {
	logger.Info("AuthSvc:Register:Start", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Email và mật khẩu không được để trống", nil)
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người dùng", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email đã được đăng ký", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể mã hoá mật khẩu", err)
	}

	now := time.Now()
	user := &entity.User{
		Email:    req.Email,
		Password: hashed,
		IsActive: true,
	}
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now
	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		logger.Error("AuthSvc:Register:CreateFailed", "email", req.Email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể tạo người dùng", err)
	}

	token, appErr := s.issueToken(user)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("AuthSvc:Register:Success", "user_id", user.ID)
	return &dto.RegisterResponse{AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	logger.Info("AuthSvc:Login:Start", "email", req.Email)

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người dùng", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Tài khoản không tồn tại", nil)
	}
	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Tài khoản đã bị khoá", nil)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Mật khẩu không đúng", nil)
	}

	token, appErr := s.issueToken(user)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("AuthSvc:Login:Success", "user_id", user.ID)
	return &dto.LoginResponse{AccessToken: token}, nil
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người dùng", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Tài khoản không tồn tại", nil)
	}

	resp := &dto.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if user.Username != nil {
		resp.Username = *user.Username
	}
	return resp, nil
}

func (s *AuthService) issueToken(user *entity.User) (string, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Không thể tạo access token", err)
	}
	return token, nil
}

var googleOAuthScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/calendar.readonly",
}

func googleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURL,
		Scopes:       googleOAuthScopes,
		Endpoint:     google.Endpoint,
	}
}

// GetGoogleAuthURL generates the Google OAuth authorization URL with a
// one-time CSRF state token.
func (s *AuthService) GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" || cfg.GoogleAPI.RedirectURL == "" {
		return "", errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	state := utils.GenerateRandomString(32)
	expiresAt := time.Now().Add(10 * time.Minute)
	if err := s.repo.SaveOAuthState(ctx, state, expiresAt); err != nil {
		logger.Error("AuthSvc:GetGoogleAuthURL:SaveStateFailed", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}

	authURL := googleOAuthConfig(cfg).AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return authURL, nil
}

// HandleGoogleCallback exchanges the authorization code, finds or creates
// the user, and hands the calendar tokens to the calendar module.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, *errors.AppError) {
	valid, err := s.repo.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthSvc:GoogleCallback:ConsumeStateFailed", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate state token", err)
	}
	if !valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	oauthConfig := googleOAuthConfig(cfg)
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthSvc:GoogleCallback:ExchangeFailed", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to exchange token", err)
	}

	userInfo, err := s.getGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthSvc:GoogleCallback:UserInfoFailed", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user info", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, userInfo.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người dùng", err)
	}

	if user == nil {
		hashed, _ := utils.HashPassword(utils.GenerateRandomString(32))
		username := userInfo.Name
		if username == "" {
			username = userInfo.Email
		}
		now := time.Now()
		user = &entity.User{
			Email:    userInfo.Email,
			Username: &username,
			Password: hashed,
			IsActive: true,
		}
		user.ID = uuid.New()
		user.CreatedAt = now
		user.UpdatedAt = now
		if userInfo.VerifiedEmail {
			user.EmailVerifiedAt = &now
		}

		if err := s.repo.CreateUser(ctx, user); err != nil {
			logger.Error("AuthSvc:GoogleCallback:CreateUserFailed", "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể tạo người dùng", err)
		}
	}

	if _, err := s.calendarService.SaveGoogleConnection(ctx, user.ID, token.AccessToken, token.RefreshToken, token.Expiry, userInfo.Email); err != nil {
		logger.Error("AuthSvc:GoogleCallback:SaveConnectionFailed", "user_id", user.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể lưu kết nối lịch Google", err)
	}

	logger.Info("AuthSvc:GoogleCallback:Success",
		"user_id", user.ID,
		"has_refresh_token", token.RefreshToken != "",
	)

	accessToken, appErr := s.issueToken(user)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.LoginResponse{AccessToken: accessToken}, nil
}

// googleUserInfo is the subset of Google's userinfo response we consume
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (s *AuthService) getGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: %s", string(body))
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}
