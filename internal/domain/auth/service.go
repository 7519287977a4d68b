package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"
	"Finora/internal/logger"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type Login struct {
	Email    string
	Password string
}

// ReportSettingProvisioner cria a configuração de relatório padrão de um
// usuário recém registrado.
type ReportSettingProvisioner interface {
	CreateDefault(ctx context.Context, userID ulid.ULID) error
}

type Service struct {
	Repository     user.Repository
	UserService    *user.Service
	Settings       ReportSettingProvisioner
	GoogleClientID string
}

func NewService(
	repo user.Repository,
	userSvc *user.Service,
	settings ReportSettingProvisioner,
	googleClientID string,
) *Service {
	return &Service{
		Repository:     repo,
		UserService:    userSvc,
		Settings:       settings,
		GoogleClientID: googleClientID,
	}
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	entity, err := s.Repository.GetByEmail(ctx, login.Email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if entity.AuthProvider != user.ProviderLocal {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Register(ctx context.Context, newUser *user.User) error {
	exists, err := s.emailExists(ctx, newUser.Email)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.ErrEmailAlreadyExists
	}
	if err := PasswordRequirements(newUser.Password); err != nil {
		return err
	}
	newUser.AuthProvider = user.ProviderLocal
	if err := s.UserService.Create(ctx, newUser); err != nil {
		return err
	}

	s.provisionDefaultSetting(ctx, newUser.Id)

	return nil
}

func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, error) {
	if s.GoogleClientID == "" {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado. Configure GOOGLE_OAUTH_CLIENT_ID e GOOGLE_OAUTH_ENABLED=true")
	}

	if credential == "" {
		return nil, appErrors.NewAuthError("CREDENTIAL_MISSING", "Credencial do Google não fornecida")
	}

	payload, err := idtoken.Validate(ctx, credential, s.GoogleClientID)
	if err != nil {
		errMsg := "Token do Google inválido"
		errLower := strings.ToLower(err.Error())
		if strings.Contains(errLower, "invalid_client") || strings.Contains(errLower, "not found") {
			errMsg = fmt.Sprintf("Client ID não encontrado ou não autorizado. Verifique se '%s' existe no Google Console e corresponde ao Client ID usado no frontend", s.GoogleClientID)
		}
		return nil, appErrors.NewAuthError("TOKEN_INVALID", errMsg).WithError(err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, appErrors.NewAuthError("EMAIL_MISSING", "Email não encontrado no token")
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = "Usuário Google"
	}

	entity, err := s.Repository.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			newUser := user.User{
				Name:         name,
				Email:        email,
				AuthProvider: user.ProviderGoogle,
			}

			if err := s.UserService.Create(ctx, &newUser); err != nil {
				return nil, err
			}

			s.provisionDefaultSetting(ctx, newUser.Id)

			return &newUser, nil
		}
		return nil, err
	}

	return entity, nil
}

// provisionDefaultSetting nunca bloqueia o cadastro: o usuário pode ajustar
// a configuração depois pelo endpoint de settings.
func (s *Service) provisionDefaultSetting(ctx context.Context, userID ulid.ULID) {
	if s.Settings == nil {
		return
	}
	if err := s.Settings.CreateDefault(ctx, userID); err != nil {
		logger.Warn().
			Err(err).
			Str("user_id", userID.String()).
			Msg("falha ao criar configuração de relatório padrão")
	}
}

func (s *Service) emailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repository.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		return false, appErrors.ErrInternalServer.WithError(err)
	}
	if appErr.Code == appErrors.ErrUserNotFound.Code {
		return false, nil
	}
	return false, appErr
}

func PasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "deve conter no mínimo 8 caracteres")
	}
	hasUpper, _ := regexp.MatchString(`[A-Z]`, password)
	if !hasUpper {
		return appErrors.NewValidationError("password", "deve conter ao menos uma letra maiúscula")
	}
	hasSpecial, _ := regexp.MatchString(`[@$!%*?&]`, password)
	if !hasSpecial {
		return appErrors.NewValidationError("password", "deve conter ao menos um caractere especial (@$!%*?&)")
	}
	return nil
}

func PasswordValidate(inputPassword string, storedPassword string) error {
	if inputPassword == "" {
		return appErrors.NewValidationError("password", "deve ser informado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(inputPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}
