// Package domain encodes the purchase entity and its attributes
package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the current state of a purchase in its lifecycle
type PurchaseStatus string

const (
	StatusPending PurchaseStatus = "pending"
	StatusPaid    PurchaseStatus = "paid"
	StatusFailed  PurchaseStatus = "failed"
)

// SupportedCurrencies lists the currencies the partner gateway accepts.
// Single entry today; extensibility point.
var SupportedCurrencies = []string{"KRW"}

// Purchase tracks one payment attempt end-to-end. RefTradeID is the
// client-supplied correlation key, ID is the internal primary key that
// downstream systems are notified with.
type Purchase struct {
	ID          string
	RefTradeID  string
	RefUserID   string
	OdCurrency  string
	OdPrice     decimal.Decimal
	ReturnURL   string
	AccessToken *string
	OdID        *string
	Status      PurchaseStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewPurchaseInput struct {
	RefTradeID string
	RefUserID  string
	OdCurrency string
	OdPrice    decimal.Decimal
	ReturnURL  string
}

func NewPurchase(id string, input NewPurchaseInput) (*Purchase, error) {
	if id == "" {
		return nil, errors.New("purchase ID is required")
	}

	var verr ValidationError
	if input.RefTradeID == "" {
		verr.Add("ref_trade_id", "can't be blank")
	}
	if input.RefUserID == "" {
		verr.Add("ref_user_id", "can't be blank")
	}
	validateCurrency(&verr, input.OdCurrency)
	if input.OdPrice.IsZero() && !input.OdPrice.IsNegative() {
		verr.Add("od_price", "can't be blank")
	} else if !input.OdPrice.IsPositive() {
		verr.Add("od_price", "must be greater than 0")
	}
	validateReturnURL(&verr, input.ReturnURL)

	if verr.HasErrors() {
		return nil, &verr
	}

	return &Purchase{
		ID:         id,
		RefTradeID: input.RefTradeID,
		RefUserID:  input.RefUserID,
		OdCurrency: input.OdCurrency,
		OdPrice:    input.OdPrice,
		ReturnURL:  input.ReturnURL,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func validateCurrency(verr *ValidationError, currency string) {
	if currency == "" {
		verr.Add("od_currency", "can't be blank")
		return
	}
	for _, supported := range SupportedCurrencies {
		if currency == supported {
			return
		}
	}
	verr.Add("od_currency", "is not included in the list of supported currencies")
}

// validateReturnURL accepts only absolute http/https URLs. Anything else
// (javascript:, data:, relative paths) is an open-redirect vector.
func validateReturnURL(verr *ValidationError, rawURL string) {
	if rawURL == "" {
		verr.Add("return_url", "can't be blank")
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		verr.Add("return_url", "must be an absolute http or https URL")
	}
}

// ResolveReturnStatus maps the partner's raw od_status code to a purchase
// status. The partner signals success with the literal code "10"; every other
// value, including an empty one, is a failed payment.
func ResolveReturnStatus(odStatus string) PurchaseStatus {
	if strings.TrimSpace(odStatus) == "10" {
		return StatusPaid
	}
	return StatusFailed
}

// AttachPartnerToken records the token exchange result. Both fields are set
// together, exactly once.
func (p *Purchase) AttachPartnerToken(accessToken, odID string) error {
	if p.AccessToken != nil || p.OdID != nil {
		return errors.New("purchase already carries a partner token")
	}
	if accessToken == "" || odID == "" {
		return errors.New("access token and od_id are both required")
	}
	p.AccessToken = &accessToken
	p.OdID = &odID
	return nil
}

// ApplyReturn transitions the purchase according to the partner's return
// callback. There is deliberately no pending-only guard: a duplicate callback
// overwrites the previous terminal status, matching last-write-wins semantics
// at the record store.
func (p *Purchase) ApplyReturn(odStatus string) PurchaseStatus {
	p.Status = ResolveReturnStatus(odStatus)
	return p.Status
}

// IsTerminal reports whether the purchase has left the pending state.
func (p *Purchase) IsTerminal() bool {
	return p.Status == StatusPaid || p.Status == StatusFailed
}

// Reconstitute - special constructor for loading from DB
func Reconstitute(
	id string, refTradeID string, refUserID string,
	odCurrency string, odPrice decimal.Decimal, returnURL string,
	accessToken, odID *string,
	status PurchaseStatus,
	createdAt, updatedAt time.Time,
) *Purchase {
	return &Purchase{
		ID:          id,
		RefTradeID:  refTradeID,
		RefUserID:   refUserID,
		OdCurrency:  odCurrency,
		OdPrice:     odPrice,
		ReturnURL:   returnURL,
		AccessToken: accessToken,
		OdID:        odID,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}
