package auth_test

import (
	"context"
	"testing"

	"Finora/internal/domain/auth"
	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, u *user.User) error
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, appErrors.ErrUserNotFound
}

type fakeProvisioner struct {
	calls  int
	lastID ulid.ULID
	err    error
}

func (f *fakeProvisioner) CreateDefault(ctx context.Context, userID ulid.ULID) error {
	f.calls++
	f.lastID = userID
	return f.err
}

func newAuthService(repo *fakeUserRepository, provisioner auth.ReportSettingProvisioner) *auth.Service {
	return auth.NewService(repo, &user.Service{Repository: repo}, provisioner, "")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Valid@123"), 12)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	localUser := &user.User{
		Id:           ulid.Make(),
		Name:         "Maria",
		Email:        "maria@example.com",
		Password:     string(hashed),
		AuthProvider: user.ProviderLocal,
	}

	tests := []struct {
		name        string
		repo        *fakeUserRepository
		login       auth.Login
		wantErrCode string
	}{
		{
			name: "valid credentials",
			repo: &fakeUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
					return localUser, nil
				},
			},
			login: auth.Login{Email: "maria@example.com", Password: "Valid@123"},
		},
		{
			name:        "unknown email",
			repo:        &fakeUserRepository{},
			login:       auth.Login{Email: "nobody@example.com", Password: "Valid@123"},
			wantErrCode: "INVALID_CREDENTIALS",
		},
		{
			name: "wrong password",
			repo: &fakeUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
					return localUser, nil
				},
			},
			login:       auth.Login{Email: "maria@example.com", Password: "Wrong@123"},
			wantErrCode: "INVALID_CREDENTIALS",
		},
		{
			name: "google account cannot use password login",
			repo: &fakeUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
					return &user.User{
						Id:           ulid.Make(),
						Email:        email,
						AuthProvider: user.ProviderGoogle,
					}, nil
				},
			},
			login:       auth.Login{Email: "maria@example.com", Password: "Valid@123"},
			wantErrCode: "INVALID_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newAuthService(tt.repo, &fakeProvisioner{})

			got, err := svc.Login(context.Background(), tt.login)

			if tt.wantErrCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got == nil || got.Email != tt.login.Email {
					t.Fatalf("unexpected user: %+v", got)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != tt.wantErrCode {
				t.Fatalf("expected %s, got %v", tt.wantErrCode, err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user and default report setting", func(t *testing.T) {
		t.Parallel()

		provisioner := &fakeProvisioner{}
		repo := &fakeUserRepository{}
		svc := newAuthService(repo, provisioner)

		newUser := &user.User{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "Valid@123",
		}

		if err := svc.Register(context.Background(), newUser); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if newUser.AuthProvider != user.ProviderLocal {
			t.Errorf("expected local provider, got %s", newUser.AuthProvider)
		}
		if provisioner.calls != 1 {
			t.Fatalf("expected 1 provisioning call, got %d", provisioner.calls)
		}
		if provisioner.lastID != newUser.Id {
			t.Errorf("expected provisioning for %s, got %s", newUser.Id, provisioner.lastID)
		}
	})

	t.Run("email already registered", func(t *testing.T) {
		t.Parallel()

		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return &user.User{Id: ulid.Make(), Email: email}, nil
			},
		}
		svc := newAuthService(repo, &fakeProvisioner{})

		err := svc.Register(context.Background(), &user.User{
			Email:    "maria@example.com",
			Password: "Valid@123",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "EMAIL_ALREADY_EXISTS" {
			t.Fatalf("expected EMAIL_ALREADY_EXISTS, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()

		svc := newAuthService(&fakeUserRepository{}, &fakeProvisioner{})

		err := svc.Register(context.Background(), &user.User{
			Email:    "maria@example.com",
			Password: "weak",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("provisioning failure does not block registration", func(t *testing.T) {
		t.Parallel()

		provisioner := &fakeProvisioner{err: appErrors.NewDatabaseError(context.DeadlineExceeded)}
		svc := newAuthService(&fakeUserRepository{}, provisioner)

		err := svc.Register(context.Background(), &user.User{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "Valid@123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if provisioner.calls != 1 {
			t.Fatalf("expected provisioning attempt, got %d", provisioner.calls)
		}
	})
}

func TestGoogleLoginRequiresConfiguration(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserRepository{}, &fakeProvisioner{})

	_, err := svc.GoogleLogin(context.Background(), "credential")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "OAUTH_NOT_CONFIGURED" {
		t.Fatalf("expected OAUTH_NOT_CONFIGURED, got %v", err)
	}
}

func TestGoogleLoginRequiresCredential(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(
		&fakeUserRepository{},
		&user.Service{Repository: &fakeUserRepository{}},
		&fakeProvisioner{},
		"client-id.apps.googleusercontent.com",
	)

	_, err := svc.GoogleLogin(context.Background(), "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "CREDENTIAL_MISSING" {
		t.Fatalf("expected CREDENTIAL_MISSING, got %v", err)
	}
}

func TestPasswordRequirements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Valid@123"},
		{name: "too short", password: "V@1a", wantErr: true},
		{name: "no uppercase", password: "valid@123", wantErr: true},
		{name: "no special", password: "Valid1234", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := auth.PasswordRequirements(tt.password)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
