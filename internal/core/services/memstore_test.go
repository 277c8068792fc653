package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory ledger with row locks held until commit or rollback.
// Writes made inside a transaction are staged and become visible on commit.
type memStore struct {
	mu          sync.Mutex
	notes       map[string]domain.CreditNote
	allocations map[string]domain.Allocation
	commitments map[string]domain.Commitment
	returns     map[string]domain.Return
	sections    map[string]domain.Section
	audit       []domain.AuditEntry

	rowLocks sync.Map // key -> *sync.Mutex

	auditErr  error
	commitErr error
}

func newMemStore() *memStore {
	return &memStore{
		notes:       map[string]domain.CreditNote{},
		allocations: map[string]domain.Allocation{},
		commitments: map[string]domain.Commitment{},
		returns:     map[string]domain.Return{},
		sections:    map[string]domain.Section{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CreditNoteRepo: &memNoteRepo{memTxManager{s}},
		CommitmentRepo: &memCommitmentRepo{memTxManager{s}},
		ReturnRepo:     &memReturnRepo{memTxManager{s}},
		SectionRepo:    &memSectionRepo{s},
		ReportingRepo:  &memReportingRepo{s},
		AuditRepo:      &memAuditRepo{s},
	}
}

func (s *memStore) addSection(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[id] = domain.Section{SectionID: id, Name: name}
}

func (s *memStore) auditEntries() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.audit...)
}

func (s *memStore) usage(allocationID string) (domain.AllocationUsage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usageLocked(allocationID)
}

func (s *memStore) usageLocked(allocationID string) (domain.AllocationUsage, bool) {
	a, ok := s.allocations[allocationID]
	if !ok {
		return domain.AllocationUsage{}, false
	}
	n := s.notes[a.NoteID]
	u := domain.AllocationUsage{
		Allocation:    a,
		NoteNumber:    n.Number,
		NoteExpiresOn: n.ExpiresOn,
		NoteCancelled: n.Cancelled,
		Program:       n.Program,
		ExpenseNature: n.ExpenseNature,
		SectionName:   s.sections[a.SectionID].Name,
		Committed:     decimal.Zero,
		Returned:      decimal.Zero,
	}
	for _, c := range s.commitments {
		if c.AllocationID == allocationID {
			u.Committed = u.Committed.Add(c.Value)
		}
	}
	for _, r := range s.returns {
		if r.AllocationID == allocationID {
			u.Returned = u.Returned.Add(r.Value)
		}
	}
	return u, true
}

// --- Transactions ---

type memTx struct {
	pgx.Tx
	held   []*sync.Mutex
	heldBy map[string]bool
	staged []func(s *memStore) error
	done   bool
}

func asMemTx(tx pgx.Tx) *memTx {
	return tx.(*memTx)
}

func (t *memTx) lock(s *memStore, key string) {
	if t.heldBy[key] {
		return
	}
	m, _ := s.rowLocks.LoadOrStore(key, &sync.Mutex{})
	m.(*sync.Mutex).Lock()
	t.held = append(t.held, m.(*sync.Mutex))
	t.heldBy[key] = true
}

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
	t.done = true
}

type memTxManager struct {
	s *memStore
}

func (m memTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{heldBy: map[string]bool{}}, nil
}

func (m memTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	t := asMemTx(tx)
	defer t.release()

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.commitErr != nil {
		return m.s.commitErr
	}
	snapshot := m.s.snapshotLocked()
	for _, op := range t.staged {
		if err := op(m.s); err != nil {
			m.s.restoreLocked(snapshot)
			return err
		}
	}
	return nil
}

type memSnapshot struct {
	notes       map[string]domain.CreditNote
	allocations map[string]domain.Allocation
	commitments map[string]domain.Commitment
	returns     map[string]domain.Return
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshotLocked() memSnapshot {
	return memSnapshot{
		notes:       cloneMap(s.notes),
		allocations: cloneMap(s.allocations),
		commitments: cloneMap(s.commitments),
		returns:     cloneMap(s.returns),
	}
}

func (s *memStore) restoreLocked(snap memSnapshot) {
	s.notes = snap.notes
	s.allocations = snap.allocations
	s.commitments = snap.commitments
	s.returns = snap.returns
}

func (m memTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := asMemTx(tx)
	if !t.done {
		t.release()
	}
	return nil
}

func (m memTxManager) LockAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationUsage, error) {
	asMemTx(tx).lock(m.s, "alloc:"+allocationID)
	u, ok := m.s.usage(allocationID)
	if !ok {
		return nil, fmt.Errorf("%w: allocation %s", apperrors.ErrNotFound, allocationID)
	}
	return &u, nil
}

// --- Credit notes ---

type memNoteRepo struct {
	memTxManager
}

var _ portsrepo.CreditNoteRepositoryWithTx = (*memNoteRepo)(nil)

func (r *memNoteRepo) FindNoteByID(ctx context.Context, noteID string) (*domain.CreditNote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[noteID]
	if !ok {
		return nil, fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, noteID)
	}
	return &n, nil
}

func (r *memNoteRepo) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.CreditNote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CreditNote
	for _, n := range r.s.notes {
		if filter.NumberSearch != "" && !strings.Contains(n.Number, strings.ToUpper(filter.NumberSearch)) {
			continue
		}
		if filter.Program != "" && n.Program != filter.Program {
			continue
		}
		if filter.ExpenseNature != "" && n.ExpenseNature != filter.ExpenseNature {
			continue
		}
		if !filter.ReceivedInRange(n.ReceivedOn) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *memNoteRepo) FindAllocationsByNoteID(ctx context.Context, noteID string) ([]domain.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Allocation
	for _, a := range r.s.allocations {
		if a.NoteID == noteID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionID < out[j].SectionID })
	return out, nil
}

func (r *memNoteRepo) LockNoteForUpdate(ctx context.Context, tx pgx.Tx, noteID string) (*domain.CreditNote, error) {
	asMemTx(tx).lock(r.s, "note:"+noteID)
	return r.FindNoteByID(ctx, noteID)
}

func (r *memNoteRepo) LockAllocationsByNoteID(ctx context.Context, tx pgx.Tx, noteID string) ([]domain.AllocationUsage, error) {
	allocations, _ := r.FindAllocationsByNoteID(ctx, noteID)
	sort.Slice(allocations, func(i, j int) bool { return allocations[i].AllocationID < allocations[j].AllocationID })
	out := make([]domain.AllocationUsage, 0, len(allocations))
	for _, a := range allocations {
		asMemTx(tx).lock(r.s, "alloc:"+a.AllocationID)
		if u, ok := r.s.usage(a.AllocationID); ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memStore) noteNumberTakenLocked(number, excludeID string) bool {
	for id, n := range s.notes {
		if id != excludeID && n.Number == number {
			return true
		}
	}
	return false
}

func (r *memNoteRepo) InsertNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	r.s.mu.Lock()
	taken := r.s.noteNumberTakenLocked(note.Number, "")
	r.s.mu.Unlock()
	if taken {
		return fmt.Errorf("%w: credit note number %s", apperrors.ErrDuplicate, note.Number)
	}
	t := asMemTx(tx)
	t.lock(r.s, "note:"+note.NoteID)
	t.staged = append(t.staged, func(s *memStore) error {
		if s.noteNumberTakenLocked(note.Number, "") {
			return fmt.Errorf("%w: credit note number %s", apperrors.ErrDuplicate, note.Number)
		}
		s.notes[note.NoteID] = note
		return nil
	})
	return nil
}

func (r *memNoteRepo) UpdateNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	r.s.mu.Lock()
	taken := r.s.noteNumberTakenLocked(note.Number, note.NoteID)
	r.s.mu.Unlock()
	if taken {
		return fmt.Errorf("%w: credit note number %s", apperrors.ErrDuplicate, note.Number)
	}
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		s.notes[note.NoteID] = note
		return nil
	})
	return nil
}

func (r *memNoteRepo) ReplaceAllocations(ctx context.Context, tx pgx.Tx, noteID string, allocations []domain.Allocation) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		kept := make(map[string]bool, len(allocations))
		for _, a := range allocations {
			kept[a.AllocationID] = true
			s.allocations[a.AllocationID] = a
		}
		for id, a := range s.allocations {
			if a.NoteID == noteID && !kept[id] {
				delete(s.allocations, id)
			}
		}
		// Deferred foreign keys: every debit must still reference a live allocation.
		for _, c := range s.commitments {
			if _, ok := s.allocations[c.AllocationID]; !ok {
				return fmt.Errorf("%w: allocation is no longer valid (constraint)", apperrors.ErrValidation)
			}
		}
		for _, ret := range s.returns {
			if _, ok := s.allocations[ret.AllocationID]; !ok {
				return fmt.Errorf("%w: allocation is no longer valid (constraint)", apperrors.ErrValidation)
			}
		}
		return nil
	})
	return nil
}

func (r *memNoteRepo) DeleteNote(ctx context.Context, tx pgx.Tx, noteID string) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		for id, a := range s.allocations {
			if a.NoteID != noteID {
				continue
			}
			for cid, c := range s.commitments {
				if c.AllocationID == id {
					delete(s.commitments, cid)
				}
			}
			delete(s.allocations, id)
		}
		for rid, ret := range s.returns {
			if ret.NoteID == noteID {
				delete(s.returns, rid)
			}
		}
		delete(s.notes, noteID)
		return nil
	})
	return nil
}

func (r *memNoteRepo) SetNoteCancelled(ctx context.Context, tx pgx.Tx, noteID string, cancelled bool, userID string, now time.Time) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		n, ok := s.notes[noteID]
		if !ok {
			return fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, noteID)
		}
		n.Cancelled = cancelled
		n.LastUpdatedAt = now
		n.LastUpdatedBy = userID
		s.notes[noteID] = n
		return nil
	})
	return nil
}

// --- Commitments ---

type memCommitmentRepo struct {
	memTxManager
}

var _ portsrepo.CommitmentRepositoryWithTx = (*memCommitmentRepo)(nil)

func (r *memCommitmentRepo) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.commitments[commitmentID]
	if !ok {
		return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	return &c, nil
}

func (r *memCommitmentRepo) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CommitmentDetail
	for _, c := range r.s.commitments {
		a := r.s.allocations[c.AllocationID]
		n := r.s.notes[a.NoteID]
		d := domain.CommitmentDetail{
			Commitment:    c,
			NoteID:        a.NoteID,
			NoteNumber:    n.Number,
			SectionID:     a.SectionID,
			SectionName:   r.s.sections[a.SectionID].Name,
			Program:       n.Program,
			ExpenseNature: n.ExpenseNature,
		}
		if (filter.NoteID != "" && d.NoteID != filter.NoteID) ||
			(filter.SectionID != "" && d.SectionID != filter.SectionID) ||
			(filter.AllocationID != "" && d.AllocationID != filter.AllocationID) ||
			(filter.NumberSearch != "" && !strings.Contains(d.Number, strings.ToUpper(filter.NumberSearch))) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *memCommitmentRepo) FindCommitmentForUpdate(ctx context.Context, tx pgx.Tx, commitmentID string) (*domain.Commitment, error) {
	asMemTx(tx).lock(r.s, "commitment:"+commitmentID)
	return r.FindCommitmentByID(ctx, commitmentID)
}

func (s *memStore) commitmentNumberTakenLocked(number, excludeID string) bool {
	for id, c := range s.commitments {
		if id != excludeID && c.Number == number {
			return true
		}
	}
	return false
}

func (r *memCommitmentRepo) CommitmentNumberExists(ctx context.Context, tx pgx.Tx, number string, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.commitmentNumberTakenLocked(number, excludeID), nil
}

func (r *memCommitmentRepo) InsertCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		if s.commitmentNumberTakenLocked(commitment.Number, "") {
			return fmt.Errorf("%w: commitment number %s", apperrors.ErrDuplicate, commitment.Number)
		}
		s.commitments[commitment.CommitmentID] = commitment
		return nil
	})
	return nil
}

func (r *memCommitmentRepo) UpdateCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		if s.commitmentNumberTakenLocked(commitment.Number, commitment.CommitmentID) {
			return fmt.Errorf("%w: commitment number %s", apperrors.ErrDuplicate, commitment.Number)
		}
		s.commitments[commitment.CommitmentID] = commitment
		return nil
	})
	return nil
}

func (r *memCommitmentRepo) DeleteCommitment(ctx context.Context, tx pgx.Tx, commitmentID string) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		delete(s.commitments, commitmentID)
		return nil
	})
	return nil
}

// --- Returns ---

type memReturnRepo struct {
	memTxManager
}

var _ portsrepo.ReturnRepositoryWithTx = (*memReturnRepo)(nil)

func (r *memReturnRepo) FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[returnID]
	if !ok {
		return nil, fmt.Errorf("%w: return %s", apperrors.ErrNotFound, returnID)
	}
	return &ret, nil
}

func (r *memReturnRepo) ListReturnsByNoteID(ctx context.Context, noteID string) ([]domain.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Return
	for _, ret := range r.s.returns {
		if ret.NoteID == noteID {
			out = append(out, ret)
		}
	}
	return out, nil
}

func (r *memReturnRepo) InsertReturn(ctx context.Context, tx pgx.Tx, ret domain.Return) error {
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		s.returns[ret.ReturnID] = ret
		return nil
	})
	return nil
}

func (r *memReturnRepo) DeleteReturn(ctx context.Context, tx pgx.Tx, returnID string) (*domain.Return, error) {
	ret, err := r.FindReturnByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	t := asMemTx(tx)
	t.staged = append(t.staged, func(s *memStore) error {
		delete(s.returns, returnID)
		return nil
	})
	return ret, nil
}

// --- Sections ---

type memSectionRepo struct {
	s *memStore
}

func (r *memSectionRepo) ListSections(ctx context.Context) ([]domain.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Section, 0, len(r.s.sections))
	for _, sec := range r.s.sections {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSectionRepo) FindSectionsByIDs(ctx context.Context, sectionIDs []string) (map[string]domain.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]domain.Section, len(sectionIDs))
	for _, id := range sectionIDs {
		if sec, ok := r.s.sections[id]; ok {
			out[id] = sec
		}
	}
	return out, nil
}

func (r *memSectionRepo) SaveSection(ctx context.Context, section domain.Section) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sec := range r.s.sections {
		if strings.EqualFold(sec.Name, section.Name) {
			return fmt.Errorf("%w: section %q", apperrors.ErrDuplicate, section.Name)
		}
	}
	r.s.sections[section.SectionID] = section
	return nil
}

func (r *memSectionRepo) DeleteSection(ctx context.Context, sectionID string) (*domain.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sec, ok := r.s.sections[sectionID]
	if !ok {
		return nil, fmt.Errorf("%w: section %s", apperrors.ErrNotFound, sectionID)
	}
	for _, a := range r.s.allocations {
		if a.SectionID == sectionID {
			return nil, fmt.Errorf("%w: section %s is still allocated", apperrors.ErrValidation, sectionID)
		}
	}
	delete(r.s.sections, sectionID)
	return &sec, nil
}

// --- Reporting and audit ---

type memReportingRepo struct {
	s *memStore
}

func (r *memReportingRepo) ListAllocationUsages(ctx context.Context, filter domain.BalanceFilter) ([]domain.AllocationUsage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.AllocationUsage
	for id := range r.s.allocations {
		u, _ := r.s.usageLocked(id)
		if (filter.NoteID != "" && u.NoteID != filter.NoteID) ||
			(filter.SectionID != "" && u.SectionID != filter.SectionID) ||
			(filter.Program != "" && u.Program != filter.Program) ||
			(filter.ExpenseNature != "" && u.ExpenseNature != filter.ExpenseNature) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NoteNumber != out[j].NoteNumber {
			return out[i].NoteNumber < out[j].NoteNumber
		}
		return out[i].SectionName < out[j].SectionName
	})
	return out, nil
}

func (r *memReportingRepo) ListFilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	programs := map[string]bool{}
	natures := map[string]bool{}
	for _, n := range r.s.notes {
		if n.Program != "" {
			programs[n.Program] = true
		}
		if n.ExpenseNature != "" && (program == "" || n.Program == program) {
			natures[n.ExpenseNature] = true
		}
	}
	return &domain.FilterOptions{Programs: sortedKeys(programs), ExpenseNatures: sortedKeys(natures)}, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type memAuditRepo struct {
	s *memStore
}

func (r *memAuditRepo) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.auditErr != nil {
		return r.s.auditErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.audit = append(r.s.audit, entry)
	return nil
}

func (r *memAuditRepo) ListRecentAuditEntries(ctx context.Context, limit int, after *domain.AuditCursor) ([]domain.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sorted := append([]domain.AuditEntry(nil), r.s.audit...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
		}
		return sorted[i].AuditID > sorted[j].AuditID
	})
	out := make([]domain.AuditEntry, 0, limit)
	for _, e := range sorted {
		if after != nil && (e.RecordedAt.After(after.RecordedAt) ||
			(e.RecordedAt.Equal(after.RecordedAt) && e.AuditID >= after.AuditID)) {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// recordingNotifier captures published events and the state of the context they arrived with.
type recordingNotifier struct {
	mu      sync.Mutex
	events  []domain.LedgerEvent
	ctxErrs []error
	err     error
}

func (n *recordingNotifier) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	return n.err
}

func (n *recordingNotifier) contextErrors() []error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]error(nil), n.ctxErrs...)
}

func (n *recordingNotifier) published() []domain.LedgerEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.LedgerEvent(nil), n.events...)
}

var errStorage = errors.New("storage unavailable")
