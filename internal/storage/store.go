package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexflint/go-filemutex"
	"github.com/google/uuid"

	"github.com/Tiliavir/timesheet/internal/logging"
	"github.com/Tiliavir/timesheet/internal/model"
)

// Store owns the three records. Absent or corrupt records read as their
// empty default; a corrupt record is quarantined and logged.
type Store struct {
	kv     KV
	logger *slog.Logger
	fm     *filemutex.FileMutex
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFileLock serialises record updates across processes.
func WithFileLock(fm *filemutex.FileMutex) Option {
	return func(s *Store) { s.fm = fm }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: logging.Discard(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Close() error {
	var err error
	if s.fm != nil {
		err = s.fm.Close()
	}
	return errors.Join(s.kv.Close(), err)
}

func (s *Store) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fm != nil {
		if err := s.fm.Lock(); err != nil {
			return fmt.Errorf("storage error acquiring lock: %w", err)
		}
		defer s.fm.Unlock()
	}
	return fn()
}

// load decodes the record stored under key. ok is false when the record is
// absent or corrupt; a corrupt record is quarantined and the zero T returned,
// never a partly decoded value.
func load[T any](s *Store, key string) (v T, ok bool, err error) {
	data, err := s.kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		backup, qerr := s.kv.Quarantine(key)
		s.logger.Warn("corrupt record replaced by default",
			"key", key, "backup", backup, "error", err.Error(), "quarantine_error", errString(qerr))
		return v, false, nil
	}
	return decoded, true, nil
}

func (s *Store) save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %s: %w", key, err)
	}
	return s.kv.Put(key, data)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (s *Store) working() (model.Week, error) {
	w, ok, err := load[model.Week](s, WorkingWeekKey)
	if err != nil {
		return model.Week{}, err
	}
	if !ok {
		return model.NewWeek(s.now()), nil
	}
	w.Normalize()
	return w, nil
}

func (s *Store) history() ([]model.Week, error) {
	h, _, err := load[[]model.Week](s, HistoryKey)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = []model.Week{}
	}
	for i := range h {
		h[i].Normalize()
	}
	return h, nil
}

// Working returns the week being edited, or a fresh week when none is stored.
func (s *Store) Working() (model.Week, error) {
	var w model.Week
	err := s.locked(func() error {
		var err error
		w, err = s.working()
		return err
	})
	return w, err
}

func (s *Store) SaveWorking(w model.Week) error {
	return s.locked(func() error { return s.save(WorkingWeekKey, w) })
}

// UpdateWorking applies fn to the working week and stores the result. Nothing
// is written when fn fails.
func (s *Store) UpdateWorking(fn func(*model.Week) error) (model.Week, error) {
	var w model.Week
	err := s.locked(func() error {
		var err error
		if w, err = s.working(); err != nil {
			return err
		}
		if err := fn(&w); err != nil {
			return err
		}
		return s.save(WorkingWeekKey, w)
	})
	return w, err
}

// ClearWorking resets the working week to a fresh week.
func (s *Store) ClearWorking() (model.Week, error) {
	w := model.NewWeek(s.now())
	return w, s.locked(func() error { return s.save(WorkingWeekKey, w) })
}

// History returns every saved week in append order.
func (s *Store) History() ([]model.Week, error) {
	var h []model.Week
	err := s.locked(func() error {
		var err error
		h, err = s.history()
		return err
	})
	return h, err
}

// stamp returns an independent copy of w with an id and save time.
func (s *Store) stamp(w model.Week) model.Week {
	c := w.Clone()
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.SavedAt == nil {
		t := s.now().UTC()
		c.SavedAt = &t
	}
	return c
}

// AppendHistory appends snapshots of ws and returns them as stored.
func (s *Store) AppendHistory(ws ...model.Week) ([]model.Week, error) {
	out := make([]model.Week, len(ws))
	err := s.locked(func() error {
		h, err := s.history()
		if err != nil {
			return err
		}
		for i, w := range ws {
			out[i] = s.stamp(w)
		}
		return s.save(HistoryKey, append(h, out...))
	})
	return out, err
}

// SaveWeek appends the working week to history and resets it.
func (s *Store) SaveWeek() (model.Week, error) {
	var snap model.Week
	err := s.locked(func() error {
		w, err := s.working()
		if err != nil {
			return err
		}
		h, err := s.history()
		if err != nil {
			return err
		}
		snap = s.stamp(w)
		if err := s.save(HistoryKey, append(h, snap)); err != nil {
			return err
		}
		return s.save(WorkingWeekKey, model.NewWeek(s.now()))
	})
	return snap, err
}

// Week returns the saved week with the given id.
func (s *Store) Week(id string) (model.Week, bool, error) {
	h, err := s.History()
	if err != nil {
		return model.Week{}, false, err
	}
	for _, w := range h {
		if w.ID == id {
			return w, true, nil
		}
	}
	return model.Week{}, false, nil
}

// Projects returns the project catalogue.
func (s *Store) Projects() ([]model.Project, error) {
	var ps []model.Project
	err := s.locked(func() error {
		var err error
		ps, _, err = load[[]model.Project](s, ProjectsKey)
		return err
	})
	if ps == nil {
		ps = []model.Project{}
	}
	return ps, err
}

// UpsertProject adds a project or updates the client of an existing one,
// matching names case-insensitively. Blank names are ignored.
func (s *Store) UpsertProject(name, client string) (model.Project, error) {
	p := model.Project{Name: strings.TrimSpace(name), Client: strings.TrimSpace(client)}
	if p.Name == "" {
		return p, nil
	}
	err := s.locked(func() error {
		ps, _, err := load[[]model.Project](s, ProjectsKey)
		if err != nil {
			return err
		}
		for i := range ps {
			if strings.EqualFold(strings.TrimSpace(ps[i].Name), p.Name) {
				ps[i].Client = p.Client
				p = ps[i]
				return s.save(ProjectsKey, ps)
			}
		}
		return s.save(ProjectsKey, append(ps, p))
	})
	return p, err
}
