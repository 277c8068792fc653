package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// balanceService derives balances and statuses from source rows on every call.
type balanceService struct {
	BaseService
	noteRepo       portsrepo.CreditNoteReader
	commitmentRepo portsrepo.CommitmentReader
	returnRepo     portsrepo.ReturnReader
	reportingRepo  portsrepo.ReportingRepository
}

// NewBalanceService creates the balance calculator and query service.
func NewBalanceService(
	noteRepo portsrepo.CreditNoteReader,
	commitmentRepo portsrepo.CommitmentReader,
	returnRepo portsrepo.ReturnReader,
	reportingRepo portsrepo.ReportingRepository,
	opts ...BaseServiceOption,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService:    newBaseService(opts...),
		noteRepo:       noteRepo,
		commitmentRepo: commitmentRepo,
		returnRepo:     returnRepo,
		reportingRepo:  reportingRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func validateStatusFilter(status domain.NoteStatus) error {
	if status != "" && !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	return nil
}

func validateBalanceFilter(filter domain.BalanceFilter) error {
	if err := validateStatusFilter(filter.Status); err != nil {
		return err
	}
	if filter.ExpiringWithinDays < 0 || filter.ExpiringWithinDays > domain.MaxExpiringWithinDays {
		return fmt.Errorf("%w: expiringWithinDays must be between 0 and %d", apperrors.ErrValidation, domain.MaxExpiringWithinDays)
	}
	return nil
}

func (s *balanceService) QueryBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.BalanceRow, error) {
	if err := validateBalanceFilter(filter); err != nil {
		return nil, err
	}
	usages, err := s.reportingRepo.ListAllocationUsages(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocation usages")
		return nil, err
	}
	today := s.Today()
	rows := classifyUsages(usages, today, filter.Status)
	if filter.ExpiringWithinDays > 0 {
		expiring := rows[:0]
		for _, row := range rows {
			if row.ExpiresWithin(today, filter.ExpiringWithinDays) {
				expiring = append(expiring, row)
			}
		}
		rows = expiring
	}
	return rows, nil
}

// classifyUsages derives balance and status per allocation, keeping only rows in the given status when set.
func classifyUsages(usages []domain.AllocationUsage, today time.Time, status domain.NoteStatus) []domain.BalanceRow {
	rows := make([]domain.BalanceRow, 0, len(usages))
	for _, u := range usages {
		row := domain.BalanceRow{
			AllocationUsage: u,
			Balance:         u.Balance(),
			Status:          u.Status(today),
		}
		if status != "" && row.Status != status {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *balanceService) QueryNoteStatement(ctx context.Context, noteID string) (*domain.NoteStatement, error) {
	var (
		note        *domain.CreditNote
		usages      []domain.AllocationUsage
		commitments []domain.CommitmentDetail
		returns     []domain.Return
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		note, err = s.noteRepo.FindNoteByID(gctx, noteID)
		return err
	})
	g.Go(func() error {
		var err error
		usages, err = s.reportingRepo.ListAllocationUsages(gctx, domain.BalanceFilter{NoteID: noteID})
		return err
	})
	g.Go(func() error {
		var err error
		commitments, err = s.commitmentRepo.ListCommitments(gctx, domain.CommitmentFilter{NoteID: noteID})
		return err
	})
	g.Go(func() error {
		var err error
		returns, err = s.returnRepo.ListReturnsByNoteID(gctx, noteID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logWriteError(ctx, err, "Failed to build note statement", slog.String("note_id", noteID))
		return nil, err
	}

	today := s.Today()
	balance := domain.NoteBalance(usages)
	if commitments == nil {
		commitments = []domain.CommitmentDetail{}
	}
	if returns == nil {
		returns = []domain.Return{}
	}
	return &domain.NoteStatement{
		Note:        *note,
		Balance:     balance,
		Status:      domain.ClassifyStatus(balance, note.ExpiresOn, today, note.Cancelled),
		Allocations: classifyUsages(usages, today, ""),
		Commitments: commitments,
		Returns:     returns,
	}, nil
}

func (s *balanceService) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.NoteSummary, error) {
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, err
	}
	if !filter.ReceivedFrom.IsZero() && !filter.ReceivedTo.IsZero() && filter.ReceivedTo.Before(filter.ReceivedFrom) {
		return nil, fmt.Errorf("%w: receivedTo cannot be before receivedFrom", apperrors.ErrValidation)
	}

	var (
		notes  []domain.CreditNote
		usages []domain.AllocationUsage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.noteRepo.ListNotes(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		usages, err = s.reportingRepo.ListAllocationUsages(gctx, domain.BalanceFilter{
			Program:       filter.Program,
			ExpenseNature: filter.ExpenseNature,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to list notes")
		return nil, err
	}

	byNote := make(map[string][]domain.AllocationUsage, len(notes))
	for _, u := range usages {
		byNote[u.NoteID] = append(byNote[u.NoteID], u)
	}

	today := s.Today()
	summaries := make([]domain.NoteSummary, 0, len(notes))
	for _, n := range notes {
		noteUsages := byNote[n.NoteID]
		allocated := decimal.Zero
		for _, u := range noteUsages {
			allocated = allocated.Add(u.Value)
		}
		balance := domain.NoteBalance(noteUsages)
		status := domain.ClassifyStatus(balance, n.ExpiresOn, today, n.Cancelled)
		if filter.Status != "" && status != filter.Status {
			continue
		}
		summaries = append(summaries, domain.NoteSummary{
			CreditNote: n,
			Allocated:  allocated,
			Balance:    balance,
			Status:     status,
		})
	}
	return summaries, nil
}

func (s *balanceService) DashboardSummary(ctx context.Context, filter domain.BalanceFilter) (*domain.DashboardSummary, error) {
	rows, err := s.QueryBalances(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := &domain.DashboardSummary{
		TotalAllocated: decimal.Zero,
		TotalBalance:   decimal.Zero,
		StatusCounts:   make(map[domain.NoteStatus]int),
	}
	for _, row := range rows {
		summary.TotalAllocated = summary.TotalAllocated.Add(row.Value)
		summary.TotalBalance = summary.TotalBalance.Add(row.Balance)
		summary.StatusCounts[row.Status]++
	}
	summary.TotalUsed = summary.TotalAllocated.Sub(summary.TotalBalance)
	summary.AllocationCount = len(rows)
	return summary, nil
}

// SectionBalances groups the filtered allocations by section, ordered by section name.
func (s *balanceService) SectionBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.SectionBalance, error) {
	rows, err := s.QueryBalances(ctx, filter)
	if err != nil {
		return nil, err
	}
	bySection := make(map[string]*domain.SectionBalance)
	for _, row := range rows {
		sb, ok := bySection[row.SectionID]
		if !ok {
			sb = &domain.SectionBalance{
				SectionID:   row.SectionID,
				SectionName: row.SectionName,
				Allocated:   decimal.Zero,
				Balance:     decimal.Zero,
			}
			bySection[row.SectionID] = sb
		}
		sb.Allocated = sb.Allocated.Add(row.Value)
		sb.Balance = sb.Balance.Add(row.Balance)
		sb.AllocationCount++
	}

	out := make([]domain.SectionBalance, 0, len(bySection))
	for _, sb := range bySection {
		sb.Used = sb.Allocated.Sub(sb.Balance)
		out = append(out, *sb)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].SectionName), strings.ToLower(out[j].SectionName)
		if ni != nj {
			return ni < nj
		}
		return out[i].SectionID < out[j].SectionID
	})
	return out, nil
}

func (s *balanceService) ListEligibleAllocations(ctx context.Context) ([]domain.BalanceRow, error) {
	rows, err := s.QueryBalances(ctx, domain.BalanceFilter{Status: domain.StatusActive})
	if err != nil {
		return nil, err
	}
	eligible := rows[:0]
	for _, row := range rows {
		if domain.RoundMoney(row.Balance).IsPositive() {
			eligible = append(eligible, row)
		}
	}
	return eligible, nil
}

func (s *balanceService) FilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error) {
	opts, err := s.reportingRepo.ListFilterOptions(ctx, program)
	if err != nil {
		s.LogError(ctx, err, "Failed to list filter options")
		return nil, err
	}
	return opts, nil
}
