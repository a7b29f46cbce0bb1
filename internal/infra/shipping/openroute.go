package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// 座標が見つからない（ジオコーディング0件）
var ErrNoCoordinates = errors.New("coordinates not found")

// [経度, 緯度]
type Coordinates [2]float64

// ルート計算の結果
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// OpenRouteServiceのジオコーディングとバイク経路
type ORSClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewORSClient(apiKey string, timeout time.Duration) *ORSClient {
	return &ORSClient{
		client:  resty.New().SetTimeout(timeout),
		baseURL: "https://api.openrouteservice.org",
		apiKey:  apiKey,
	}
}

// テスト用にURLを差し替える
func (c *ORSClient) WithBaseURL(url string) *ORSClient {
	c.baseURL = url
	return c
}

// Geocodeは住所テキストから座標を1件引く。
func (c *ORSClient) Geocode(ctx context.Context, text string) (Coordinates, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":          c.apiKey,
			"text":             text,
			"boundary.country": "BR",
		}).
		Get(c.baseURL + "/geocode/search")
	if err != nil {
		return Coordinates{}, ErrExternalService
	}
	if resp.StatusCode() != 200 {
		return Coordinates{}, ErrExternalService
	}

	var out struct {
		Features []struct {
			Geometry struct {
				Coordinates Coordinates `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return Coordinates{}, ErrExternalService
	}
	if len(out.Features) == 0 {
		return Coordinates{}, ErrNoCoordinates
	}

	return out.Features[0].Geometry.Coordinates, nil
}

// DirectionsMotorcycleは2点間のバイク経路の距離と所要時間を返す。
func (c *ORSClient) DirectionsMotorcycle(ctx context.Context, origin Coordinates, dest Coordinates) (Route, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"coordinates": []Coordinates{origin, dest},
		}).
		Post(c.baseURL + "/v2/directions/motorcycle")
	if err != nil {
		return Route{}, ErrExternalService
	}
	if resp.StatusCode() != 200 {
		return Route{}, ErrExternalService
	}

	var out struct {
		Features []struct {
			Properties struct {
				Segments []struct {
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
				} `json:"segments"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return Route{}, ErrExternalService
	}
	if len(out.Features) == 0 || len(out.Features[0].Properties.Segments) == 0 {
		return Route{}, ErrExternalService
	}

	seg := out.Features[0].Properties.Segments[0]
	return Route{DistanceMeters: seg.Distance, DurationSeconds: seg.Duration}, nil
}
