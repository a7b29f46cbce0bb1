package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	//CEPがViaCEPに存在しない
	ErrCEPNotFound = errors.New("cep not found")

	//外部APIが落ちている・壊れた応答
	ErrExternalService = errors.New("external service error")
)

// ViaCEPが返す住所
type CEPAddress struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// 地理座標検索に渡す1行表記
func (a CEPAddress) FullText() string {
	return fmt.Sprintf("%s, %s, %s, Brasil", a.Street, a.City, a.State)
}

type ViaCEPClient struct {
	client  *resty.Client
	baseURL string
}

func NewViaCEPClient(timeout time.Duration) *ViaCEPClient {
	return &ViaCEPClient{
		client:  resty.New().SetTimeout(timeout),
		baseURL: "https://viacep.com.br/ws",
	}
}

// テスト用にURLを差し替える
func (c *ViaCEPClient) WithBaseURL(url string) *ViaCEPClient {
	c.baseURL = url
	return c
}

// Lookupは8桁CEPの住所を引く。未登録CEPはErrCEPNotFound
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (CEPAddress, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(fmt.Sprintf("%s/%s/json/", c.baseURL, cep))
	if err != nil {
		return CEPAddress{}, ErrExternalService
	}
	if resp.StatusCode() != 200 {
		return CEPAddress{}, ErrExternalService
	}

	//ViaCEPは未登録CEPでも200で {"erro": true} を返す
	var raw struct {
		CEPAddress
		Erro any `json:"erro"`
	}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return CEPAddress{}, ErrExternalService
	}
	if raw.Erro != nil {
		return CEPAddress{}, ErrCEPNotFound
	}

	return raw.CEPAddress, nil
}
