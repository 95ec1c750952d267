package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agamariel/uniformes/internal/auth"
	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/storage"
	"github.com/google/uuid"
)

func TestUserServiceImpl_Register(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"

	tests := []struct {
		name        string
		login       string
		password    string
		mockStorage *storage.MockUserStorage
		wantErr     bool
		errType     error
	}{
		{
			name:     "successful registration",
			login:    "test@example.com",
			password: "password123",
			mockStorage: &storage.MockUserStorage{
				CreateFunc: func(ctx context.Context, user *models.User) error {
					return nil
				},
			},
			wantErr: false,
		},
		{
			name:        "empty login",
			login:       "",
			password:    "password123",
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name:        "empty password",
			login:       "test@example.com",
			password:    "",
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name:     "login already exists",
			login:    "existing@example.com",
			password: "password123",
			mockStorage: &storage.MockUserStorage{
				CreateFunc: func(ctx context.Context, user *models.User) error {
					return storage.ErrLoginExists
				},
			},
			wantErr: true,
			errType: storage.ErrLoginExists,
		},
		{
			name:     "storage error",
			login:    "test@example.com",
			password: "password123",
			mockStorage: &storage.MockUserStorage{
				CreateFunc: func(ctx context.Context, user *models.User) error {
					return errors.New("database error")
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewUserService(tt.mockStorage, secret, 24*time.Hour)

			user, token, err := service.Register(ctx, tt.login, tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if tt.errType != nil && !errors.Is(err, tt.errType) {
					t.Errorf("Register() error type = %T, want %T", err, tt.errType)
				}
				return
			}

			// Проверки для успешной регистрации
			if user == nil {
				t.Error("Register() returned nil user")
				return
			}
			if user.Login != tt.login {
				t.Errorf("Register() user.Login = %v, want %v", user.Login, tt.login)
			}
			if user.Role != models.RoleResponsavel {
				t.Errorf("Register() user.Role = %v, want %v", user.Role, models.RoleResponsavel)
			}
			if token == "" {
				t.Error("Register() returned empty token")
			}
		})
	}
}

func TestUserServiceImpl_RegisterStoresHash(t *testing.T) {
	var stored *models.User
	mockStorage := &storage.MockUserStorage{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			stored = user
			return nil
		},
	}
	service := NewUserService(mockStorage, "test-secret", time.Hour)

	if _, _, err := service.Register(context.Background(), "mae@escola.br", "senha123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if stored == nil {
		t.Fatal("user was not stored")
	}
	if stored.Role != models.RoleResponsavel {
		t.Errorf("stored Role = %v, want %v", stored.Role, models.RoleResponsavel)
	}
	if stored.PasswordHash == "senha123" {
		t.Error("password stored in plain text")
	}
	if !auth.CheckPassword("senha123", stored.PasswordHash) {
		t.Error("stored hash does not match the password")
	}
	if auth.CheckPassword("senha124", stored.PasswordHash) {
		t.Error("stored hash matches a different password")
	}
}

func TestUserServiceImpl_Login(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"
	correctPassword := "password123"

	// Создаём хеш для правильного пароля
	hash, err := auth.HashPassword(correctPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	existingUser := &models.User{
		ID:           uuid.New(),
		Login:        "test@example.com",
		PasswordHash: hash,
		Role:         models.RoleSupplier,
	}

	tests := []struct {
		name        string
		login       string
		password    string
		mockStorage *storage.MockUserStorage
		wantErr     bool
		errType     error
	}{
		{
			name:     "successful login",
			login:    "test@example.com",
			password: correctPassword,
			mockStorage: &storage.MockUserStorage{
				GetByLoginFunc: func(ctx context.Context, login string) (*models.User, error) {
					return existingUser, nil
				},
			},
			wantErr: false,
		},
		{
			name:        "empty login",
			login:       "",
			password:    correctPassword,
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name:        "empty password",
			login:       "test@example.com",
			password:    "",
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name:     "user not found",
			login:    "nonexistent@example.com",
			password: correctPassword,
			mockStorage: &storage.MockUserStorage{
				GetByLoginFunc: func(ctx context.Context, login string) (*models.User, error) {
					return nil, storage.ErrUserNotFound
				},
			},
			wantErr: true,
			errType: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			login:    "test@example.com",
			password: "wrongpassword",
			mockStorage: &storage.MockUserStorage{
				GetByLoginFunc: func(ctx context.Context, login string) (*models.User, error) {
					return existingUser, nil
				},
			},
			wantErr: true,
			errType: ErrInvalidCredentials,
		},
		{
			name:     "storage error",
			login:    "test@example.com",
			password: correctPassword,
			mockStorage: &storage.MockUserStorage{
				GetByLoginFunc: func(ctx context.Context, login string) (*models.User, error) {
					return nil, errors.New("database error")
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewUserService(tt.mockStorage, secret, 24*time.Hour)

			user, token, err := service.Login(ctx, tt.login, tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if tt.errType != nil && !errors.Is(err, tt.errType) {
					t.Errorf("Login() error type = %v, want %v", err, tt.errType)
				}
				return
			}

			// Проверки для успешного логина
			if user == nil {
				t.Error("Login() returned nil user")
			}
			if token == "" {
				t.Error("Login() returned empty token")
			}
		})
	}
}

func TestUserServiceImpl_RegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"
	password := "testpassword123"

	var storedHash string
	mockStorage := &storage.MockUserStorage{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			storedHash = user.PasswordHash
			return nil
		},
	}

	service := NewUserService(mockStorage, secret, 24*time.Hour)
	_, _, err := service.Register(ctx, "test@example.com", password)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Проверяем, что пароль был хеширован
	if storedHash == password {
		t.Error("Register() did not hash the password")
	}
	if storedHash == "" {
		t.Error("Register() stored empty password hash")
	}
}

func TestUserServiceImpl_LoginTokenCarriesRole(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Login:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	service := NewUserService(&storage.MockUserStorage{
		GetByLoginFunc: func(ctx context.Context, login string) (*models.User, error) {
			return user, nil
		},
	}, secret, time.Hour)

	_, token, err := service.Login(ctx, user.Login, "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := auth.ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("claims.Role = %v, want %v", claims.Role, models.RoleAdmin)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}
}
