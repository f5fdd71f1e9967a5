package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository mocks
// ---------------------------------------------------------------------------

type mockDemandRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.CreditDemand, error)
	hasContractFunc func(ctx context.Context, demandID string) (bool, error)
	savedDemands    []*model.CreditDemand
	updatedDemands  []*model.CreditDemand
}

func (m *mockDemandRepository) Save(_ context.Context, d *model.CreditDemand) error {
	m.savedDemands = append(m.savedDemands, d)
	return nil
}

func (m *mockDemandRepository) Update(_ context.Context, d *model.CreditDemand) error {
	m.updatedDemands = append(m.updatedDemands, d)
	return nil
}

func (m *mockDemandRepository) FindByID(ctx context.Context, id string) (*model.CreditDemand, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, valueobject.ErrNotFound
}

func (m *mockDemandRepository) FindByClientID(context.Context, string) ([]*model.CreditDemand, error) {
	return nil, nil
}

func (m *mockDemandRepository) HasContract(ctx context.Context, demandID string) (bool, error) {
	if m.hasContractFunc != nil {
		return m.hasContractFunc(ctx, demandID)
	}
	return false, nil
}

type mockContractRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (*model.CreditContract, error)
	findOverdueFunc  func(ctx context.Context, now time.Time) ([]*model.CreditContract, error)
	updateErr        error
	savedContracts   []*model.CreditContract
	updatedContracts []*model.CreditContract
}

func (m *mockContractRepository) Save(_ context.Context, c *model.CreditContract) error {
	m.savedContracts = append(m.savedContracts, c)
	return nil
}

func (m *mockContractRepository) Update(_ context.Context, c *model.CreditContract) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedContracts = append(m.updatedContracts, c)
	return nil
}

func (m *mockContractRepository) FindByID(ctx context.Context, id string) (*model.CreditContract, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, valueobject.ErrNotFound
}

func (m *mockContractRepository) FindByClientID(context.Context, string) ([]*model.CreditContract, error) {
	return nil, nil
}

func (m *mockContractRepository) FindOverdue(ctx context.Context, now time.Time) ([]*model.CreditContract, error) {
	if m.findOverdueFunc != nil {
		return m.findOverdueFunc(ctx, now)
	}
	return nil, nil
}

func (m *mockContractRepository) CountOpenByClientID(context.Context, string) (int, error) {
	return 0, nil
}

type mockPaymentRepository struct {
	findByCreditIDFunc func(ctx context.Context, creditID string) ([]*model.CreditPayment, error)
	savedPayments      []*model.CreditPayment
	updatedPayments    []*model.CreditPayment
}

func (m *mockPaymentRepository) Save(_ context.Context, p *model.CreditPayment) error {
	m.savedPayments = append(m.savedPayments, p)
	return nil
}

func (m *mockPaymentRepository) Update(_ context.Context, p *model.CreditPayment) error {
	m.updatedPayments = append(m.updatedPayments, p)
	return nil
}

func (m *mockPaymentRepository) FindByID(context.Context, string) (*model.CreditPayment, error) {
	return nil, valueobject.ErrNotFound
}

func (m *mockPaymentRepository) FindByCreditID(ctx context.Context, creditID string) ([]*model.CreditPayment, error) {
	if m.findByCreditIDFunc != nil {
		return m.findByCreditIDFunc(ctx, creditID)
	}
	return nil, nil
}

type mockPenaltyRepository struct {
	saveInserted     bool
	findByIDFunc     func(ctx context.Context, id string) (*model.CreditPenalty, error)
	unpaidCount      int
	savedPenalties   []*model.CreditPenalty
	updatedPenalties []*model.CreditPenalty
}

func (m *mockPenaltyRepository) Save(_ context.Context, p *model.CreditPenalty) (bool, error) {
	m.savedPenalties = append(m.savedPenalties, p)
	return m.saveInserted, nil
}

func (m *mockPenaltyRepository) Update(_ context.Context, p *model.CreditPenalty) error {
	m.updatedPenalties = append(m.updatedPenalties, p)
	return nil
}

func (m *mockPenaltyRepository) FindByID(ctx context.Context, id string) (*model.CreditPenalty, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, valueobject.ErrNotFound
}

func (m *mockPenaltyRepository) FindByCreditID(context.Context, string) ([]*model.CreditPenalty, error) {
	return nil, nil
}

func (m *mockPenaltyRepository) CountUnpaidByCreditID(context.Context, string) (int, error) {
	return m.unpaidCount, nil
}

func (m *mockPenaltyRepository) CountUnpaidByClientID(context.Context, string) (int, error) {
	return m.unpaidCount, nil
}

type mockRemunerationRepository struct {
	savedRemunerations []*model.GuarantorRemuneration
}

func (m *mockRemunerationRepository) Save(_ context.Context, r *model.GuarantorRemuneration) error {
	m.savedRemunerations = append(m.savedRemunerations, r)
	return nil
}

func (m *mockRemunerationRepository) FindByCreditID(context.Context, string) ([]*model.GuarantorRemuneration, error) {
	return nil, nil
}

func (m *mockRemunerationRepository) FindByGuarantorID(context.Context, string) ([]*model.GuarantorRemuneration, error) {
	return nil, nil
}

// ---------------------------------------------------------------------------
// Collaborator mocks
// ---------------------------------------------------------------------------

type mockMemberDirectory struct {
	members map[string]*port.Member
}

func (m *mockMemberDirectory) FindByID(_ context.Context, id string) (*port.Member, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, valueobject.ErrNotFound
}

type mockCaisseClient struct {
	lastContributions map[string]time.Time
}

func (m *mockCaisseClient) LastContributionAt(_ context.Context, clientID string) (time.Time, error) {
	return m.lastContributions[clientID], nil
}

func (m *mockCaisseClient) ContributionBalance(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type mockDocumentStore struct {
	proofErr   error
	receiptErr error
}

func (m *mockDocumentStore) StoreProof(_ context.Context, name string, _ []byte) (string, error) {
	if m.proofErr != nil {
		return "", m.proofErr
	}
	return "docs/proofs/" + name, nil
}

func (m *mockDocumentStore) StoreReceipt(_ context.Context, name string, _ []byte) (string, error) {
	if m.receiptErr != nil {
		return "", m.receiptErr
	}
	return "docs/receipts/" + name, nil
}

type mockReceiptGenerator struct {
	generateErr error
}

func (m *mockReceiptGenerator) Generate(*model.CreditContract, *model.CreditPayment, string) ([]byte, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return []byte("%PDF-1.4"), nil
}

type mockNotifier struct {
	paymentNotices int
	penaltyNotices int
	closingNotices int
	notifyErr      error
}

func (m *mockNotifier) NotifyPaymentReceived(context.Context, *port.Member, *model.CreditContract, *model.CreditPayment) error {
	m.paymentNotices++
	return m.notifyErr
}

func (m *mockNotifier) NotifyPenaltyAssessed(context.Context, *port.Member, *model.CreditPenalty) error {
	m.penaltyNotices++
	return m.notifyErr
}

func (m *mockNotifier) NotifyContractClosed(context.Context, *port.Member, *model.CreditContract) error {
	m.closingNotices++
	return m.notifyErr
}

type mockEventPublisher struct {
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}
