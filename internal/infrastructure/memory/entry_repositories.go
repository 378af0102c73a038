package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/repository"
)

var (
	_ repository.WorkEntryRepository = (*WorkEntryRepo)(nil)
	_ repository.PartEntryRepository = (*PartEntryRepo)(nil)
	_ repository.ChecklistRepository = (*ChecklistRepo)(nil)
)

// WorkEntryRepo implementa WorkEntryRepository en memoria.
type WorkEntryRepo struct {
	s *Store
}

func (r *WorkEntryRepo) Create(_ context.Context, work *entity.WorkEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.workSeq++
	work.ID = r.s.workSeq
	work.Confirmacion = entity.Confirmed
	if work.CreatedAt.IsZero() {
		work.CreatedAt = r.s.now()
	}
	r.s.works[work.ID] = *work
	return nil
}

func (r *WorkEntryRepo) GetByID(_ context.Context, id int64) (*entity.WorkEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.works[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WorkEntryRepo) ListByMotor(_ context.Context, motorID int64) ([]entity.WorkEntry, error) {
	r.s.mu.RLock()
	out := make([]entity.WorkEntry, 0)
	for _, w := range r.s.works {
		if w.MotorID == motorID {
			out = append(out, w)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WorkEntryRepo) Update(_ context.Context, work *entity.WorkEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.works[work.ID]; !ok {
		return domain.ErrNotFound
	}
	work.Confirmacion = entity.Confirmed
	r.s.works[work.ID] = *work
	return nil
}

func (r *WorkEntryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.works[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.works, id)
	return nil
}

// PartEntryRepo implementa PartEntryRepository en memoria.
type PartEntryRepo struct {
	s *Store
}

func (r *PartEntryRepo) Create(_ context.Context, part *entity.PartEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.partSeq++
	part.ID = r.s.partSeq
	part.Confirmacion = entity.Confirmed
	if part.CreatedAt.IsZero() {
		part.CreatedAt = r.s.now()
	}
	r.s.parts[part.ID] = *part
	return nil
}

func (r *PartEntryRepo) GetByID(_ context.Context, id int64) (*entity.PartEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PartEntryRepo) ListByMotor(_ context.Context, motorID int64) ([]entity.PartEntry, error) {
	r.s.mu.RLock()
	out := make([]entity.PartEntry, 0)
	for _, p := range r.s.parts {
		if p.MotorID == motorID {
			out = append(out, p)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PartEntryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.parts, id)
	return nil
}

// ChecklistRepo implementa ChecklistRepository en memoria.
type ChecklistRepo struct {
	s *Store
}

func (r *ChecklistRepo) ListByMotor(_ context.Context, motorID int64) ([]entity.ChecklistEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.ChecklistEntry{}, r.s.checklist[motorID]...), nil
}

func (r *ChecklistRepo) Replace(_ context.Context, motorID int64, entries []entity.ChecklistEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]entity.ChecklistEntry, 0, len(entries))
	for _, e := range entries {
		r.s.checklistSeq++
		e.ID = r.s.checklistSeq
		e.MotorID = motorID
		rows = append(rows, e)
	}
	r.s.checklist[motorID] = rows
	return nil
}
