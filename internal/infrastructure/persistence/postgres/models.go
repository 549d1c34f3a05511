package postgres

import (
	"time"
)

// PurchaseModel mirrors the purchases table. OdPrice travels as text and is
// converted at the mapper boundary so the NUMERIC column never goes through
// a float.
type PurchaseModel struct {
	ID          string
	RefTradeID  string
	RefUserID   string
	OdCurrency  string
	OdPrice     string
	ReturnURL   string
	AccessToken *string
	OdID        *string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
