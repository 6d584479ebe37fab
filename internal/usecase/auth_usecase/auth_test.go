package auth_test

import (
	"context"
	"testing"
	"time"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
	auth "greenbasket/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type VerifierStub struct{ ok bool }

func (v VerifierStub) Verify(plain string, hashed string) bool { return v.ok }

type IssuerStub struct {
	token string
	err   error
}

func (i IssuerStub) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return i.token, now.Add(15 * time.Minute), i.err
}

type FixedClock struct{ now time.Time }

func (c FixedClock) Now() time.Time { return c.now }

// =====================
// Register
// =====================

func TestRegister_InvalidEmail(t *testing.T) {
	ctx := context.Background()

	uc := auth.NewRegisterUserUsecase(new(UserRepoMock), new(HasherMock), FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.RegisterUserInput{Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	ctx := context.Background()

	uc := auth.NewRegisterUserUsecase(new(UserRepoMock), new(HasherMock), FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.RegisterUserInput{Email: "u@example.com", Password: "short"})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{ID: 1, Email: "u@example.com"}, nil)

	uc := auth.NewRegisterUserUsecase(userRepo, new(HasherMock), FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.RegisterUserInput{Email: "u@example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "u@example.com" && u.Role == model.RoleUser && u.IsActive && u.PasswordHash == "hashed"
	})).Return(model.User{ID: 1, Email: "u@example.com", PasswordHash: "hashed", Role: model.RoleUser}, nil)

	hasher := new(HasherMock)
	hasher.On("Hash", "password1").Return("hashed", nil)

	uc := auth.NewRegisterUserUsecase(userRepo, hasher, FixedClock{now: now})

	out, err := uc.Execute(ctx, auth.RegisterUserInput{Email: "u@example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.User.ID)
	//ハッシュは外へ出さない
	assert.Empty(t, out.User.PasswordHash)

	userRepo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestRegister_DeliveryPartnerGetsDeliveryRole(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "d@example.com").Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Role == model.RoleDelivery
	})).Return(model.User{ID: 2, Role: model.RoleDelivery}, nil)

	hasher := new(HasherMock)
	hasher.On("Hash", "password1").Return("hashed", nil)

	uc := auth.NewRegisterUserUsecase(userRepo, hasher, FixedClock{now: time.Now()})

	out, err := uc.Execute(ctx, auth.RegisterUserInput{Email: "d@example.com", Password: "password1", IsDeliveryPartner: true})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleDelivery, out.User.Role)
}

// =====================
// Login
// =====================

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

	uc := auth.NewLoginUsecase(userRepo, VerifierStub{ok: true}, IssuerStub{token: "t"}, FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{ID: 1, PasswordHash: "hashed", IsActive: true}, nil)

	uc := auth.NewLoginUsecase(userRepo, VerifierStub{ok: false}, IssuerStub{token: "t"}, FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "u@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{ID: 1, PasswordHash: "hashed", IsActive: false}, nil)

	uc := auth.NewLoginUsecase(userRepo, VerifierStub{ok: true}, IssuerStub{token: "t"}, FixedClock{now: time.Now()})

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "u@example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{ID: 1, Email: "u@example.com", PasswordHash: "hashed", Role: model.RoleUser, IsActive: true}, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, int64(1)).Return(nil)

	uc := auth.NewLoginUsecase(userRepo, VerifierStub{ok: true}, IssuerStub{token: "jwt-token"}, FixedClock{now: now})

	out, err := uc.Execute(ctx, auth.LoginInput{Email: "u@example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", out.AccessToken)
	assert.Equal(t, now.Add(15*time.Minute), out.ExpiresAt)
	assert.Empty(t, out.User.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestLogin_SucceedsEvenIfLastLoginUpdateFails(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "u@example.com").Return(model.User{ID: 1, PasswordHash: "hashed", IsActive: true}, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, int64(1)).Return(assert.AnError)

	uc := auth.NewLoginUsecase(userRepo, VerifierStub{ok: true}, IssuerStub{token: "t"}, FixedClock{now: time.Now()})

	out, err := uc.Execute(ctx, auth.LoginInput{Email: "u@example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, "t", out.AccessToken)
}
