package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// StubCaisseClient is a development/test adapter for the cooperative's
// savings ledger. It implements port.CaisseClient with deterministic
// answers derived from the client id.
type StubCaisseClient struct{}

// NewStubCaisseClient creates a new stub adapter.
func NewStubCaisseClient() *StubCaisseClient {
	return &StubCaisseClient{}
}

// LastContributionAt returns a deterministic recent contribution date
// between 0 and 44 days ago.
func (c *StubCaisseClient) LastContributionAt(_ context.Context, clientID string) (time.Time, error) {
	if clientID == "" {
		return time.Time{}, valueobject.ErrNotFound
	}

	h := sha256.Sum256([]byte(clientID))
	daysAgo := int(binary.BigEndian.Uint32(h[:4]) % 45)
	return time.Now().UTC().AddDate(0, 0, -daysAgo), nil
}

// ContributionBalance returns a deterministic balance between 10 000 and
// 1 000 000.
func (c *StubCaisseClient) ContributionBalance(_ context.Context, clientID string) (decimal.Decimal, error) {
	if clientID == "" {
		return decimal.Zero, valueobject.ErrNotFound
	}

	h := sha256.Sum256([]byte(clientID))
	amount := 10_000 + int64(binary.BigEndian.Uint32(h[4:8])%990_001)
	return decimal.NewFromInt(amount), nil
}
