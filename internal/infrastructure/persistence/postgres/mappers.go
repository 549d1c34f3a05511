package postgres

import (
	"fmt"

	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/shopspring/decimal"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m PurchaseModel) (*domain.Purchase, error) {
	price, err := decimal.NewFromString(m.OdPrice)
	if err != nil {
		return nil, fmt.Errorf("parse od_price %q: %w", m.OdPrice, err)
	}

	return domain.Reconstitute(
		m.ID,
		m.RefTradeID,
		m.RefUserID,
		m.OdCurrency,
		price,
		m.ReturnURL,
		m.AccessToken,
		m.OdID,
		domain.PurchaseStatus(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// toDBModel: maps domain entity to db model
func toDBModel(p *domain.Purchase) *PurchaseModel {
	return &PurchaseModel{
		ID:          p.ID,
		RefTradeID:  p.RefTradeID,
		RefUserID:   p.RefUserID,
		OdCurrency:  p.OdCurrency,
		OdPrice:     p.OdPrice.String(),
		ReturnURL:   p.ReturnURL,
		AccessToken: p.AccessToken,
		OdID:        p.OdID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
