// Package memory implementa los repositorios en memoria. Se usa con STORAGE=memory
// (instalaciones de escritorio sin PostgreSQL) y como fake en las pruebas.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// Store guarda todos los agregados protegidos por un único mutex.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	motors    map[int64]entity.Motor
	works     map[int64]entity.WorkEntry
	parts     map[int64]entity.PartEntry
	checklist map[int64][]entity.ChecklistEntry

	motorSeq, workSeq, partSeq, checklistSeq int64

	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		motors:    make(map[int64]entity.Motor),
		works:     make(map[int64]entity.WorkEntry),
		parts:     make(map[int64]entity.PartEntry),
		checklist: make(map[int64][]entity.ChecklistEntry),
		now:       time.Now,
	}
}

// WithClock fija el reloj usado para CreatedAt (pruebas).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Motors devuelve el repositorio de motores.
func (s *Store) Motors() *MotorRepo { return &MotorRepo{s: s} }

// WorkEntries devuelve el repositorio de trabajos.
func (s *Store) WorkEntries() *WorkEntryRepo { return &WorkEntryRepo{s: s} }

// PartEntries devuelve el repositorio de ítems.
func (s *Store) PartEntries() *PartEntryRepo { return &PartEntryRepo{s: s} }

// Checklist devuelve el repositorio del checklist.
func (s *Store) Checklist() *ChecklistRepo { return &ChecklistRepo{s: s} }

type snapshot struct {
	motors    map[int64]entity.Motor
	works     map[int64]entity.WorkEntry
	parts     map[int64]entity.PartEntry
	checklist map[int64][]entity.ChecklistEntry

	motorSeq, workSeq, partSeq, checklistSeq int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		motors:       make(map[int64]entity.Motor, len(s.motors)),
		works:        make(map[int64]entity.WorkEntry, len(s.works)),
		parts:        make(map[int64]entity.PartEntry, len(s.parts)),
		checklist:    make(map[int64][]entity.ChecklistEntry, len(s.checklist)),
		motorSeq:     s.motorSeq,
		workSeq:      s.workSeq,
		partSeq:      s.partSeq,
		checklistSeq: s.checklistSeq,
	}
	for k, v := range s.motors {
		snap.motors[k] = v
	}
	for k, v := range s.works {
		snap.works[k] = v
	}
	for k, v := range s.parts {
		snap.parts[k] = v
	}
	for k, v := range s.checklist {
		snap.checklist[k] = append([]entity.ChecklistEntry(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motors = snap.motors
	s.works = snap.works
	s.parts = snap.parts
	s.checklist = snap.checklist
	s.motorSeq = snap.motorSeq
	s.workSeq = snap.workSeq
	s.partSeq = snap.partSeq
	s.checklistSeq = snap.checklistSeq
}

func sortByIDDesc(motors []*entity.Motor) {
	sort.Slice(motors, func(i, j int) bool { return motors[i].ID > motors[j].ID })
}
