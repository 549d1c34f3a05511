package services_test

import (
	"context"
	"sync"

	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/partner"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
)

// MockPurchaseRepository is a map-backed in-memory store. Every method can be
// overridden per-test through its Fn field; the default behavior mirrors the
// real repository, including its sentinel errors.
type MockPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[string]*domain.Purchase // keyed by internal ID
	byTradeID map[string]string

	CreateFn             func(ctx context.Context, purchase *domain.Purchase) error
	FindByRefTradeIDFn   func(ctx context.Context, refTradeID string) (*domain.Purchase, error)
	UpdatePartnerTokenFn func(ctx context.Context, id, accessToken, odID string) error
	UpdateStatusFn       func(ctx context.Context, id string, status domain.PurchaseStatus) error

	UpdateStatusCalls int
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{
		purchases: make(map[string]*domain.Purchase),
		byTradeID: make(map[string]string),
	}
}

func clonePurchase(p *domain.Purchase) *domain.Purchase {
	clone := *p
	if p.AccessToken != nil {
		token := *p.AccessToken
		clone.AccessToken = &token
	}
	if p.OdID != nil {
		odID := *p.OdID
		clone.OdID = &odID
	}
	return &clone
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, purchase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byTradeID[purchase.RefTradeID]; exists {
		return postgres.ErrDuplicateTradeID
	}
	m.purchases[purchase.ID] = clonePurchase(purchase)
	m.byTradeID[purchase.RefTradeID] = purchase.ID
	return nil
}

func (m *MockPurchaseRepository) FindByRefTradeID(ctx context.Context, refTradeID string) (*domain.Purchase, error) {
	if m.FindByRefTradeIDFn != nil {
		return m.FindByRefTradeIDFn(ctx, refTradeID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byTradeID[refTradeID]
	if !ok {
		return nil, postgres.ErrPurchaseNotFound
	}
	return clonePurchase(m.purchases[id]), nil
}

func (m *MockPurchaseRepository) UpdatePartnerToken(ctx context.Context, id, accessToken, odID string) error {
	if m.UpdatePartnerTokenFn != nil {
		return m.UpdatePartnerTokenFn(ctx, id, accessToken, odID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	purchase, ok := m.purchases[id]
	if !ok {
		return postgres.ErrPurchaseNotFound
	}
	purchase.AccessToken = &accessToken
	purchase.OdID = &odID
	return nil
}

func (m *MockPurchaseRepository) UpdateStatus(ctx context.Context, id string, status domain.PurchaseStatus) error {
	m.mu.Lock()
	m.UpdateStatusCalls++
	m.mu.Unlock()
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	purchase, ok := m.purchases[id]
	if !ok {
		return postgres.ErrPurchaseNotFound
	}
	purchase.Status = status
	return nil
}

// Stored returns a snapshot of the persisted record for assertions.
func (m *MockPurchaseRepository) Stored(refTradeID string) *domain.Purchase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byTradeID[refTradeID]
	if !ok {
		return nil
	}
	return clonePurchase(m.purchases[id])
}

// MockTokenExchanger captures exchange calls and answers with a canned
// response unless overridden.
type MockTokenExchanger struct {
	ExchangeTokenFn func(ctx context.Context, req partner.TokenRequest) (*partner.TokenResponse, error)

	Requests []partner.TokenRequest
}

func (m *MockTokenExchanger) ExchangeToken(ctx context.Context, req partner.TokenRequest) (*partner.TokenResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.ExchangeTokenFn != nil {
		return m.ExchangeTokenFn(ctx, req)
	}
	return &partner.TokenResponse{AccessToken: "access-token", OdID: "od-1"}, nil
}

// MockStatusNotifier records every notification it receives.
type MockStatusNotifier struct {
	NotifyStatusFn func(ctx context.Context, purchaseID string, status domain.PurchaseStatus) error

	Notified []NotifiedStatus
}

type NotifiedStatus struct {
	PurchaseID string
	Status     domain.PurchaseStatus
}

func (m *MockStatusNotifier) NotifyStatus(ctx context.Context, purchaseID string, status domain.PurchaseStatus) error {
	m.Notified = append(m.Notified, NotifiedStatus{PurchaseID: purchaseID, Status: status})
	if m.NotifyStatusFn != nil {
		return m.NotifyStatusFn(ctx, purchaseID, status)
	}
	return nil
}
