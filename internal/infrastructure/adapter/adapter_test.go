package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

func TestFSDocumentStore(t *testing.T) {
	store, err := NewFSDocumentStore(t.TempDir())
	require.NoError(t, err)

	t.Run("stores proof and receipt in separate directories", func(t *testing.T) {
		proofPath, err := store.StoreProof(context.Background(), "proof.jpg", []byte("jpeg-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "proofs", filepath.Base(filepath.Dir(proofPath)))

		receiptPath, err := store.StoreReceipt(context.Background(), "receipt.pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, "receipts", filepath.Base(filepath.Dir(receiptPath)))

		content, err := os.ReadFile(receiptPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), content)
	})

	t.Run("strips path components from client-supplied names", func(t *testing.T) {
		path, err := store.StoreProof(context.Background(), "../../etc/passwd", []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, "passwd", filepath.Base(path))
		assert.Equal(t, "proofs", filepath.Base(filepath.Dir(path)))
	})
}

func TestPDFReceiptGenerator_Generate(t *testing.T) {
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	contract := model.ReconstructCreditContract(
		"contract-001", "demand-001", "client-001", valueobject.CreditTypeSpeciale,
		decimal.NewFromInt(500_000), decimal.NewFromInt(5),
		decimal.NewFromInt(87_500), decimal.NewFromInt(612_500), 7,
		"", first, first.AddDate(0, 1, 0),
		decimal.NewFromInt(87_500), decimal.NewFromInt(525_000),
		decimal.NewFromInt(5), valueobject.ContractStatusPartial,
		"", "", nil, "", nil,
		created, created, 2,
	)
	payment := model.ReconstructCreditPayment(
		"payment-001", "contract-001", decimal.NewFromInt(87_500),
		first, model.PaymentModeCash, "", "", "MK_PAIEMENT_CSP_M0042_010226_0000", first,
	)

	content, err := NewPDFReceiptGenerator("Karacoop").Generate(contract, payment, "Awa Diop")
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestStubMemberDirectory_FindByID(t *testing.T) {
	dir := NewStubMemberDirectory()

	m1, err := dir.FindByID(context.Background(), "client-001")
	require.NoError(t, err)
	assert.True(t, m1.Active)
	assert.NotEmpty(t, m1.Matricule)
	assert.NotEmpty(t, m1.Email)

	// Deterministic: same id yields the same member.
	m2, err := dir.FindByID(context.Background(), "client-001")
	require.NoError(t, err)
	assert.Equal(t, m1, m2)

	_, err = dir.FindByID(context.Background(), "")
	assert.Error(t, err)
}

func TestStubCaisseClient(t *testing.T) {
	caisse := NewStubCaisseClient()

	last1, err := caisse.LastContributionAt(context.Background(), "client-001")
	require.NoError(t, err)
	assert.False(t, last1.IsZero())

	balance, err := caisse.ContributionBalance(context.Background(), "client-001")
	require.NoError(t, err)
	assert.True(t, balance.IsPositive())
}
