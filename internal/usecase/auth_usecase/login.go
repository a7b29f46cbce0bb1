package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	Role        string `json:"role"`

	//顧客アカウントのときだけ入る
	CustomerID *int64 `json:"customer_id"`
}

var (
	// メールまたはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")

	// 停止済みユーザー
	ErrUserInactive = errors.New("user inactive")
)

// 平文とハッシュの照合
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// アクセストークンの発行
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// LoginUsecaseはメール＋パスワードでアクセストークンを発行する。
type LoginUsecase struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	verifier  PasswordVerifier
	issuer    TokenIssuer
	clock     Clock
}

// DI
func NewLoginUsecase(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		users:     users,
		customers: customers,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if in.Email == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return out, err
	}
	if user == nil {
		//存在の有無は返さない
		return out, ErrInvalidCredentials
	}
	if !user.IsActive {
		return out, ErrUserInactive
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	// 最終ログインを記録。失敗してもログインは通す
	user.LastLoginAt = &now
	user.UpdatedAt = now
	_ = u.users.Update(ctx, user)

	out = LoginOutput{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
		UserEmail:   user.Email,
		Role:        string(user.Role),
	}

	// 顧客なら表示名とIDを添える
	c, err := u.customers.FindByUserID(ctx, user.ID)
	if err == nil {
		out.UserName = c.Name
		out.CustomerID = &c.ID
	} else if errors.Is(err, repository.ErrNotFound) {
		out.UserName = user.Email
	} else {
		return LoginOutput{}, err
	}

	return out, nil
}
