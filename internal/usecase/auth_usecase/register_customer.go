package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterCustomerInput struct {
	Name      string
	Email     string
	Password  string
	BirthDate time.Time
	CPF       string
	Address   string
	Phone     string
}

// 会員登録の出力
type RegisterCustomerOutput struct {
	CustomerID int64          `json:"customer_id"`
	User       model.User     `json:"user"`
	Customer   model.Customer `json:"customer"`
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidCPFFormat   = errors.New("cpf must be 11 digits")
	ErrInvalidPhoneFormat = errors.New("phone must be 10 or 11 digits")
	ErrNameRequired       = errors.New("name required")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCPFAlreadyExists   = errors.New("cpf already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterCustomerUsecaseは顧客の会員登録の処理。
// UserとCustomerを同じトランザクションで作る。
type RegisterCustomerUsecase struct {
	tx     repository.TransactionManager
	hasher PasswordHasher
	clock  Clock
}

// DI
func NewRegisterCustomerUsecase(
	tx repository.TransactionManager,
	hasher PasswordHasher,
	clock Clock,
) *RegisterCustomerUsecase {
	return &RegisterCustomerUsecase{
		tx:     tx,
		hasher: hasher,
		clock:  clock,
	}
}

// 会員登録実行
func (u *RegisterCustomerUsecase) Execute(ctx context.Context, in RegisterCustomerInput) (RegisterCustomerOutput, error) {
	var out RegisterCustomerOutput

	// 必須と形式チェック
	if in.Name == "" {
		return out, ErrNameRequired
	}
	if !validator.IsEmailLike(in.Email) {
		return out, ErrInvalidEmailFormat
	}
	if !validator.IsCPF(in.CPF) {
		return out, ErrInvalidCPFFormat
	}
	if !validator.IsPhone(in.Phone) {
		return out, ErrInvalidPhoneFormat
	}
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()

	// UserとCustomerはどちらも作れたときだけ残す
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		// email重複チェック（UserとCustomer両方）
		existing, err := r.Users().FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}
		used, err := r.Customers().ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if used {
			return ErrEmailAlreadyExists
		}

		// CPF重複チェック
		cpfUsed, err := r.Customers().ExistsByCPF(ctx, in.CPF)
		if err != nil {
			return err
		}
		if cpfUsed {
			return ErrCPFAlreadyExists
		}

		user := &model.User{
			Email:        in.Email,
			PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
			Role:         model.RoleCustomer,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}

		customer := model.Customer{
			UserID:    user.ID,
			Name:      in.Name,
			BirthDate: in.BirthDate,
			CPF:       in.CPF,
			Address:   in.Address,
			Email:     in.Email,
			Phone:     in.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		customerID, err := r.Customers().Create(ctx, customer)
		if err != nil {
			return err
		}

		customer.ID = customerID

		// 返すときは password を空にして漏洩防止
		safeUser := *user
		safeUser.PasswordHash = ""

		out = RegisterCustomerOutput{
			CustomerID: customerID,
			User:       safeUser,
			Customer:   customer,
		}
		return nil
	})
	if err != nil {
		return RegisterCustomerOutput{}, err
	}

	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
