package service

import (
	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
	"rewear-service/internal/repository"
	"rewear-service/pkg/config"
	"rewear-service/pkg/hashutil"
	"rewear-service/pkg/jwtutil"
	"rewear-service/pkg/logger"

	"go.uber.org/zap"
)

// RegisterInput is the registration payload
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
}

// LoginInput is the login payload
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a partial profile update; nil fields are left unchanged
type ProfileInput struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone   *string `json:"phone"`
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
	Country *string `json:"country"`
}

// ChangePasswordInput carries a password rotation request
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=100"`
}

// AuthService proves identity and issues session tokens
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService returns an AuthService backed by the user repository
func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	cost := hashutil.DefaultCost
	if cfg != nil {
		cost = cfg.Auth.BcryptCost
	}
	return &AuthService{users: users, bcryptCost: cost}
}

// Register creates a new identity and issues a session token. The role is
// always "user"; no registration path creates an admin.
func (s *AuthService) Register(input RegisterInput) (*model.User, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, "", apperr.Validationf("name, email and password are required")
	}

	hashed, err := hashutil.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", apperr.Internalf("hash password: %v", err)
	}

	user := &model.User{
		Email:    input.Email,
		Password: hashed,
		Name:     input.Name,
		Role:     model.RoleUser,
		Phone:    input.Phone,
		Street:   input.Street,
		City:     input.City,
		State:    input.State,
		ZipCode:  input.ZipCode,
		Country:  input.Country,
		IsActive: true,
	}

	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", apperr.Internalf("generate token: %v", err)
	}

	logger.GetLogger().Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	return user, token, nil
}

// Login verifies credentials and issues a session token. A missing user, a
// deactivated account and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(input LoginInput) (*model.User, string, error) {
	user, err := s.users.GetByEmail(input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", apperr.ErrUnauthenticated
		}
		return nil, "", err
	}

	if !hashutil.CheckPassword(input.Password, user.Password) {
		return nil, "", apperr.ErrUnauthenticated
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", apperr.Internalf("generate token: %v", err)
	}

	logger.GetLogger().Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	return user, token, nil
}

// CurrentUser resolves session claims to the stored identity
func (s *AuthService) CurrentUser(claims *jwtutil.SessionClaims) (*model.User, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return s.users.GetByID(claims.UserID)
}

// UpdateProfile applies a partial profile edit to the caller's own identity.
// Email and role are immutable through this path.
func (s *AuthService) UpdateProfile(claims *jwtutil.SessionClaims, input ProfileInput) (*model.User, error) {
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.Validationf("name must not be empty")
		}
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Street != nil {
		user.Street = *input.Street
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.ZipCode != nil {
		user.ZipCode = *input.ZipCode
	}
	if input.Country != nil {
		user.Country = *input.Country
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the caller's password after verifying the current
// one. Existing session tokens stay valid until they expire.
func (s *AuthService) ChangePassword(claims *jwtutil.SessionClaims, input ChangePasswordInput) error {
	if claims == nil {
		return apperr.ErrUnauthenticated
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return err
	}

	if !hashutil.CheckPassword(input.CurrentPassword, user.Password) {
		return apperr.ErrUnauthenticated
	}

	hashed, err := hashutil.HashPassword(input.NewPassword, s.bcryptCost)
	if err != nil {
		return apperr.Internalf("hash password: %v", err)
	}

	if err := s.users.UpdatePassword(user.ID, hashed); err != nil {
		return err
	}

	logger.GetLogger().Info("Password changed", zap.Uint("user_id", user.ID))
	return nil
}
