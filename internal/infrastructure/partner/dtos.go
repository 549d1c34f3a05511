package partner

import "github.com/shopspring/decimal"

// TokenRequest is the body posted to the partner's paygate auth endpoint.
type TokenRequest struct {
	TradeID  string          `json:"trade_id"`
	UserID   string          `json:"user_id"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}

// TokenResponse carries the two fields the partner must return together.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	OdID        string `json:"od_id"`
}
