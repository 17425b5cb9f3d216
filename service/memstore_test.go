package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
)

type dueKey struct {
	loanID uint
	number int
}

// memStore is an in-memory Store. Transactions snapshot the tables and
// restore them when fn fails.
type memStore struct {
	mu sync.Mutex

	nextID uint
	loans  map[uint]models.Loan
	insts  map[uint]models.LoanSchedule
	dues   map[dueKey]models.LoanDue
	users  map[uint]models.User
	notifs []models.Notification

	mirrorWrites int
}

func newMemStore() *memStore {
	return &memStore{
		loans: map[uint]models.Loan{},
		insts: map[uint]models.LoanSchedule{},
		dues:  map[dueKey]models.LoanDue{},
		users: map[uint]models.User{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	loans, insts, dues := cloneMap(m.loans), cloneMap(m.insts), cloneMap(m.dues)
	notifs := append([]models.Notification(nil), m.notifs...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.loans, m.insts, m.dues, m.notifs = loans, insts, dues, notifs
		m.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) CreateLoan(ctx context.Context, loan *models.Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loan.ID = m.id()
	m.loans[loan.ID] = *loan
	return nil
}

func (m *memStore) GetLoan(ctx context.Context, id uint) (*models.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan %d: %w", id, ErrNotFound)
	}
	return &l, nil
}

func (m *memStore) UpdateLoanFields(ctx context.Context, id uint, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok {
		return fmt.Errorf("loan %d: %w", id, ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "loan_status":
			l.LoanStatus = v.(models.LoanStatus)
		case "due_amount":
			l.DueAmount = v.(decimal.Decimal)
		default:
			return fmt.Errorf("memStore: unsupported loan field %q", k)
		}
	}
	m.loans[id] = l
	return nil
}

func (m *memStore) CreateInstallment(ctx context.Context, inst *models.LoanSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.insts {
		if x.LoanID == inst.LoanID && x.InstallmentNo == inst.InstallmentNo {
			return fmt.Errorf("duplicate installment %d/%d", inst.LoanID, inst.InstallmentNo)
		}
	}
	inst.ID = m.id()
	m.insts[inst.ID] = *inst
	return nil
}

func (m *memStore) GetInstallment(ctx context.Context, id uint) (*models.LoanSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, ok := m.insts[id]
	if !ok {
		return nil, fmt.Errorf("installment %d: %w", id, ErrNotFound)
	}
	return &x, nil
}

func (m *memStore) ListInstallments(ctx context.Context, loanID uint) ([]models.LoanSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LoanSchedule
	for _, x := range m.insts {
		if x.LoanID == loanID {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallmentNo < out[j].InstallmentNo })
	return out, nil
}

func (m *memStore) SaveInstallment(ctx context.Context, inst *models.LoanSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, ok := m.insts[inst.ID]
	if !ok {
		return fmt.Errorf("installment %d: %w", inst.ID, ErrNotFound)
	}
	assigned := x.AssignedToID
	x = *inst
	x.AssignedToID = assigned
	m.insts[inst.ID] = x
	return nil
}

func (m *memStore) DeleteInstallment(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.insts[id]; !ok {
		return fmt.Errorf("installment %d: %w", id, ErrNotFound)
	}
	delete(m.insts, id)
	return nil
}

func (m *memStore) SetInstallmentAssignee(ctx context.Context, id uint, userID *uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, ok := m.insts[id]
	if !ok {
		return fmt.Errorf("installment %d: %w", id, ErrNotFound)
	}
	x.AssignedToID = userID
	m.insts[id] = x
	return nil
}

func (m *memStore) MirrorDue(ctx context.Context, loanID uint, dueNumber int, fn MirrorFunc) (*models.LoanDue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := dueKey{loanID, dueNumber}
	d, ok := m.dues[k]
	if !ok {
		d = models.LoanDue{ID: m.id(), LoanID: loanID, DueNumber: dueNumber}
		fn(&d, true)
		m.dues[k] = d
		m.mirrorWrites++
		return &d, nil
	}
	work := d
	if fn(&work, false) {
		// only the mirrored columns are persisted on update
		d.DueDate = work.DueDate
		d.DueAmount = work.DueAmount
		m.dues[k] = d
		m.mirrorWrites++
	}
	return &d, nil
}

func (m *memStore) DeleteDue(ctx context.Context, loanID uint, dueNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dues, dueKey{loanID, dueNumber})
	return nil
}

func (m *memStore) LockDue(ctx context.Context, id uint) (*models.LoanDue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.dues {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("due %d: %w", id, ErrNotFound)
}

func (m *memStore) SaveDuePayment(ctx context.Context, due *models.LoanDue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := dueKey{due.LoanID, due.DueNumber}
	if _, ok := m.dues[k]; !ok {
		return fmt.Errorf("due %d: %w", due.ID, ErrNotFound)
	}
	m.dues[k] = *due
	return nil
}

func (m *memStore) ListDues(ctx context.Context, loanID uint) ([]models.LoanDue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LoanDue
	for _, d := range m.dues {
		if d.LoanID == loanID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueNumber < out[j].DueNumber })
	return out, nil
}

func (m *memStore) PendingDuesOn(ctx context.Context, day time.Time) ([]DueReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DueReminder
	for _, d := range m.dues {
		if d.PaymentStatus != models.PaymentPending || !d.DueDate.Equal(day) {
			continue
		}
		if l, ok := m.loans[d.LoanID]; !ok || l.LoanStatus != models.LoanActive {
			continue
		}
		r := DueReminder{
			DueID:     d.ID,
			LoanID:    d.LoanID,
			DueNumber: d.DueNumber,
			DueDate:   d.DueDate,
			DueAmount: d.DueAmount,
		}
		if c := m.loans[d.LoanID].Customer; c != nil {
			r.CustomerName, r.CustomerEmail = c.FullName, c.Email
		}
		for _, x := range m.insts {
			if x.LoanID == d.LoanID && x.InstallmentNo == d.DueNumber {
				r.AssignedToID = x.AssignedToID
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueID < out[j].DueID })
	return out, nil
}

func (m *memStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (m *memStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	m.notifs = append(m.notifs, *n)
	return nil
}

func (m *memStore) addUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	m.users[u.ID] = u
	return u
}

func (m *memStore) due(loanID uint, number int) (models.LoanDue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dues[dueKey{loanID, number}]
	return d, ok
}

func (m *memStore) setDue(d models.LoanDue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dues[dueKey{d.LoanID, d.DueNumber}] = d
}

var _ Store = (*memStore)(nil)
