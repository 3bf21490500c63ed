package handler

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eventgate/checkin/internal/model"
	"github.com/eventgate/checkin/internal/repository"
)

// fakeStore is an in-memory RegistrationStore + SettingsStore with the
// same contract as the SQL repositories: the check-in transition is
// atomic with respect to concurrent calls, so the capacity limit can
// never be overrun.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint64
	regs   map[uint64]*model.Registration
	limit  int
}

func newFakeStore(limit int) *fakeStore {
	return &fakeStore{regs: make(map[uint64]*model.Registration), limit: limit}
}

func (s *fakeStore) Create(_ context.Context, n model.NewRegistration) (uint64, error) {
	if err := repository.ValidateNewRegistration(&n); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	reg := &model.Registration{
		ID:                 s.nextID,
		FamilyName:         n.FamilyName,
		PrimaryContactName: n.PrimaryContactName,
		Phone:              n.Phone,
		Adults:             n.Adults,
		Kids:               n.Kids,
		CreatedAt:          time.Now().UTC(),
	}
	if n.Email != "" {
		v := n.Email
		reg.Email = &v
	}
	if n.Notes != "" {
		v := n.Notes
		reg.Notes = &v
	}
	s.regs[reg.ID] = reg
	return reg.ID, nil
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrRegistrationNotFound
	}
	cp := *reg
	return &cp, nil
}

func (s *fakeStore) Search(_ context.Context, query string) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var id uint64
	if n, err := strconv.ParseUint(query, 10, 64); err == nil && n > 0 {
		id = n
	}
	var out []model.Registration
	for _, reg := range s.regs {
		email := ""
		if reg.Email != nil {
			email = *reg.Email
		}
		if reg.ID == id ||
			strings.Contains(strings.ToLower(reg.FamilyName), q) ||
			strings.Contains(strings.ToLower(reg.PrimaryContactName), q) ||
			strings.Contains(strings.ToLower(reg.Phone), q) ||
			strings.Contains(strings.ToLower(email), q) {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (s *fakeStore) CheckIn(_ context.Context, id uint64) (*model.Registration, model.CheckinStatus, model.GateStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var none model.GateStats
	reg, ok := s.regs[id]
	if !ok {
		return nil, "", none, repository.ErrRegistrationNotFound
	}
	if reg.CheckedIn {
		cp := *reg
		return &cp, model.StatusAlready, none, nil
	}
	checkedIn := s.countCheckedInLocked()
	if !model.GateAllows(checkedIn, s.limit) {
		cp := *reg
		return &cp, model.StatusLocked, model.GateStats{CheckedIn: checkedIn, CapacityLimit: s.limit}, nil
	}
	now := time.Now().UTC()
	reg.CheckedIn = true
	reg.CheckedInAt = &now
	cp := *reg
	return &cp, model.StatusCheckedIn, model.GateStats{CheckedIn: checkedIn + 1, CapacityLimit: s.limit}, nil
}

func (s *fakeStore) UndoCheckin(_ context.Context, id uint64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrRegistrationNotFound
	}
	reg.CheckedIn = false
	reg.CheckedInAt = nil
	cp := *reg
	return &cp, nil
}

func (s *fakeStore) CountCheckedIn(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countCheckedInLocked(), nil
}

func (s *fakeStore) CountTotal(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs), nil
}

func (s *fakeStore) CapacityLimit(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit, nil
}

func (s *fakeStore) SetCapacityLimit(_ context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = n
	return nil
}

func (s *fakeStore) countCheckedInLocked() int {
	n := 0
	for _, reg := range s.regs {
		if reg.CheckedIn {
			n++
		}
	}
	return n
}
