package auth

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")
)

// アクセストークンを発行する約束（実装はJWT）
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        model.User
}

// LoginUsecaseはログインの処理。
type LoginUsecase struct {
	userRepo repo.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewLoginUsecase(userRepo repo.UserRepository, verifier PasswordVerifier, issuer TokenIssuer, clock Clock) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		//存在しないemailでも同じエラー（ユーザー列挙防止）
		return out, ErrInvalidCredentials
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}
	if !user.IsActive {
		return out, ErrUserInactive
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	//最終ログインはベストエフォート更新（失敗してもログインは成功）
	_ = u.userRepo.UpdateLastLogin(ctx, user.ID)

	user.PasswordHash = ""

	out.AccessToken = token
	out.ExpiresAt = expiresAt
	out.User = user
	return out, nil
}
