package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopkart/internal/auth"
	apperrors "shopkart/internal/errors"
	"shopkart/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newAuthServiceForTest(repo *MockUserRepository, store *MockTokenStore) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"), store)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Error(t, err)
	httpErr, ok := err.(*apperrors.HTTPError)
	if assert.True(t, ok, "expected *errors.HTTPError, got %T", err) {
		assert.Equal(t, code, httpErr.Code)
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		setupMock    func(*MockUserRepository)
		expectedCode string
	}{
		{
			name:     "successful registration",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "duplicate email is checked case-insensitively",
			userName: "Existing User",
			email:    "EXISTING@Example.COM",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedCode: "CONFLICT",
		},
		{
			name:     "password shorter than six characters",
			userName: "Weak Password",
			email:    "weak@example.com",
			password: "12345",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "weak@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthServiceForTest(mockRepo, new(MockTokenStore))
			user, token, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedCode != "" {
				assertErrorCode(t, err, tt.expectedCode)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.Equal(t, "test@example.com", user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   bool
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: true,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthServiceForTest(mockRepo, new(MockTokenStore))
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				assertErrorCode(t, err, "UNAUTHORIZED")
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// The 401 message must not reveal whether the email or the password was wrong.
func TestAuthService_Login_NoCredentialLeak(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	unknownRepo := new(MockUserRepository)
	unknownRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
	_, _, errUnknown := newAuthServiceForTest(unknownRepo, new(MockTokenStore)).
		Login(context.Background(), "nobody@example.com", "password123")

	wrongPassRepo := new(MockUserRepository)
	wrongPassRepo.On("FindByEmail", mock.Anything, "known@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "known@example.com",
		PasswordHash: string(hashed),
	}, nil)
	_, _, errWrongPass := newAuthServiceForTest(wrongPassRepo, new(MockTokenStore)).
		Login(context.Background(), "known@example.com", "nope-nope")

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_UpdateProfile(t *testing.T) {
	actorID := uuid.New()
	otherID := uuid.New()

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name         string
		newName      *string
		newEmail     *string
		setupMock    func(*MockUserRepository)
		expectedCode string
	}{
		{
			name:     "update name only",
			newName:  strPtr("  New Name  "),
			newEmail: nil,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(&model.User{
					ID: actorID, Name: "Old", Email: "actor@example.com", Role: model.RoleUser,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "email owned by another user",
			newEmail: strPtr("taken@example.com"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(&model.User{
					ID: actorID, Name: "Actor", Email: "actor@example.com", Role: model.RoleUser,
				}, nil)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{
					ID: otherID, Email: "taken@example.com",
				}, nil)
			},
			expectedCode: "CONFLICT",
		},
		{
			name:     "actor record gone",
			newName:  strPtr("Whoever"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthServiceForTest(mockRepo, new(MockTokenStore))
			user, err := svc.UpdateProfile(context.Background(), actorID, tt.newName, tt.newEmail)

			if tt.expectedCode != "" {
				assertErrorCode(t, err, tt.expectedCode)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, user) && tt.newName != nil {
					assert.Equal(t, "New Name", user.Name)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	store := new(MockTokenStore)
	store.On("RevokeToken", mock.Anything, "token-id", mock.Anything).Return(nil)

	svc := newAuthServiceForTest(new(MockUserRepository), store)

	assert.NoError(t, svc.Logout(context.Background(), "token-id", time.Hour))
	store.AssertExpectations(t)

	// Nothing to revoke for already-expired tokens.
	assert.NoError(t, svc.Logout(context.Background(), "token-id", -time.Minute))
	store.AssertNumberOfCalls(t, "RevokeToken", 1)
}
