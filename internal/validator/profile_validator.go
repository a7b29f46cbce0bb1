package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	cpfPattern   = regexp.MustCompile(`^\d{11}$`)
	phonePattern = regexp.MustCompile(`^\d{10,11}$`)
	cepPattern   = regexp.MustCompile(`^\d{8}$`)
)

// CPFは数字ちょうど11桁
func IsCPF(cpf string) bool {
	return cpfPattern.MatchString(cpf)
}

// 電話番号は数字10〜11桁
func IsPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// メールチェック
func IsEmailLike(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// CEPは数字8桁（ハイフンは呼び出し側で除去しておく）
func IsCEP(cep string) bool {
	return cepPattern.MatchString(cep)
}

// NormalizeCEPはハイフンと前後の空白を落とす。
func NormalizeCEP(cep string) string {
	return strings.ReplaceAll(strings.TrimSpace(cep), "-", "")
}
