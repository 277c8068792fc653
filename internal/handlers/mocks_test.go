package handlers_test

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CreditNoteService ---
type MockCreditNoteService struct {
	mock.Mock
}

func (m *MockCreditNoteService) GetNote(ctx context.Context, noteID string) (*domain.CreditNote, []domain.Allocation, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.CreditNote), args.Get(1).([]domain.Allocation), args.Error(2)
}
func (m *MockCreditNoteService) CreateOrUpdateNote(ctx context.Context, noteID string, req dto.SaveCreditNoteRequest, userID string) (*domain.CreditNote, []domain.Allocation, error) {
	args := m.Called(ctx, noteID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.CreditNote), args.Get(1).([]domain.Allocation), args.Error(2)
}
func (m *MockCreditNoteService) DeleteNote(ctx context.Context, noteID string, userID string) error {
	args := m.Called(ctx, noteID, userID)
	return args.Error(0)
}
func (m *MockCreditNoteService) SetNoteCancelled(ctx context.Context, noteID string, cancelled bool, userID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, noteID, cancelled, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

var _ portssvc.CreditNoteSvcFacade = (*MockCreditNoteService)(nil)

// --- Mock CommitmentService ---
type MockCommitmentService struct {
	mock.Mock
}

func (m *MockCommitmentService) CreateCommitment(ctx context.Context, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commitment), args.Error(1)
}
func (m *MockCommitmentService) UpdateCommitment(ctx context.Context, commitmentID string, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error) {
	args := m.Called(ctx, commitmentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commitment), args.Error(1)
}
func (m *MockCommitmentService) DeleteCommitment(ctx context.Context, commitmentID string, userID string) error {
	args := m.Called(ctx, commitmentID, userID)
	return args.Error(0)
}
func (m *MockCommitmentService) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommitmentDetail), args.Error(1)
}

var _ portssvc.CommitmentSvcFacade = (*MockCommitmentService)(nil)

// --- Mock ReturnService ---
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) CreateReturn(ctx context.Context, req dto.CreateReturnRequest, userID string) (*domain.Return, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}
func (m *MockReturnService) DeleteReturn(ctx context.Context, returnID string, userID string) error {
	args := m.Called(ctx, returnID, userID)
	return args.Error(0)
}

var _ portssvc.ReturnSvcFacade = (*MockReturnService)(nil)

// --- Mock SectionService ---
type MockSectionService struct {
	mock.Mock
}

func (m *MockSectionService) ListSections(ctx context.Context) ([]domain.Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Section), args.Error(1)
}
func (m *MockSectionService) CreateSection(ctx context.Context, req dto.CreateSectionRequest, userID string) (*domain.Section, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}
func (m *MockSectionService) DeleteSection(ctx context.Context, sectionID string, userID string) error {
	args := m.Called(ctx, sectionID, userID)
	return args.Error(0)
}

var _ portssvc.SectionSvcFacade = (*MockSectionService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) QueryBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.BalanceRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceRow), args.Error(1)
}
func (m *MockBalanceService) QueryNoteStatement(ctx context.Context, noteID string) (*domain.NoteStatement, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NoteStatement), args.Error(1)
}
func (m *MockBalanceService) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.NoteSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NoteSummary), args.Error(1)
}
func (m *MockBalanceService) DashboardSummary(ctx context.Context, filter domain.BalanceFilter) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}
func (m *MockBalanceService) SectionBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.SectionBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SectionBalance), args.Error(1)
}
func (m *MockBalanceService) ListEligibleAllocations(ctx context.Context) ([]domain.BalanceRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceRow), args.Error(1)
}
func (m *MockBalanceService) FilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error) {
	args := m.Called(ctx, program)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry domain.AuditEntry) {
	m.Called(ctx, entry)
}
func (m *MockAuditService) ListRecent(ctx context.Context, limit int, cursor string) (*domain.AuditPage, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditPage), args.Error(1)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)
