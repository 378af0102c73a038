package tallerclient

import (
	"sync"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// Estado de un trabajo en la cola local.
const (
	StatusSpeculative = entity.Speculative // mostrado localmente, sin confirmar
	StatusConfirmed   = entity.Confirmed   // el servidor lo guardó
	StatusFailed      = "failed"           // se agotaron los envíos o el servidor lo rechazó
)

// PendingWork es un trabajo registrado localmente.
type PendingWork struct {
	LocalID   int
	MotorID   int64
	Request   dto.CreateWorkEntryRequest
	Status    string
	Sends     int
	LastError string
	Confirmed *dto.WorkEntryResponse
	CreatedAt time.Time
}

// PendingQueue guarda los trabajos hasta que el servidor los confirme. Nunca
// descarta un trabajo en silencio: o se confirma o queda marcado como fallido.
type PendingQueue struct {
	mu       sync.Mutex
	maxSends int
	seq      int
	entries  []*PendingWork
}

// NewPendingQueue crea la cola. maxSends <= 0 usa DefaultMaxSends.
func NewPendingQueue(maxSends int) *PendingQueue {
	if maxSends <= 0 {
		maxSends = DefaultMaxSends
	}
	return &PendingQueue{maxSends: maxSends}
}

// Add registra un trabajo especulativo.
func (q *PendingQueue) Add(motorID int64, in dto.CreateWorkEntryRequest) *PendingWork {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	p := &PendingWork{LocalID: q.seq, MotorID: motorID, Request: in, Status: StatusSpeculative, CreatedAt: time.Now()}
	q.entries = append(q.entries, p)
	cp := *p
	return &cp
}

// Get devuelve una copia del trabajo local.
func (q *PendingQueue) Get(localID int) *PendingWork {
	q.mu.Lock()
	defer q.mu.Unlock()
	if p := q.find(localID); p != nil {
		cp := *p
		return &cp
	}
	return nil
}

// Speculative devuelve copias de los trabajos sin confirmar del motor (0 = todos).
func (q *PendingQueue) Speculative(motorID int64) []PendingWork {
	return q.filter(motorID, StatusSpeculative)
}

// Failed devuelve los trabajos fallidos del motor (0 = todos).
func (q *PendingQueue) Failed(motorID int64) []PendingWork {
	return q.filter(motorID, StatusFailed)
}

// Confirmed devuelve los trabajos ya confirmados del motor (0 = todos).
func (q *PendingQueue) Confirmed(motorID int64) []PendingWork {
	return q.filter(motorID, StatusConfirmed)
}

// Retry vuelve a poner un trabajo fallido como especulativo con el contador en cero.
func (q *PendingQueue) Retry(localID int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.find(localID)
	if p == nil || p.Status != StatusFailed {
		return false
	}
	p.Status, p.Sends, p.LastError = StatusSpeculative, 0, ""
	return true
}

func (q *PendingQueue) filter(motorID int64, status string) []PendingWork {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []PendingWork
	for _, p := range q.entries {
		if p.Status == status && (motorID == 0 || p.MotorID == motorID) {
			out = append(out, *p)
		}
	}
	return out
}

func (q *PendingQueue) confirm(localID int, w dto.WorkEntryResponse) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if p := q.find(localID); p != nil {
		p.Sends++
		p.Status = StatusConfirmed
		p.Confirmed = &w
		p.LastError = ""
	}
}

// fail registra un envío fallido; permanent o agotar maxSends lo marca fallido.
func (q *PendingQueue) fail(localID int, err error, permanent bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.find(localID)
	if p == nil {
		return
	}
	p.Sends++
	p.LastError = err.Error()
	if permanent || p.Sends >= q.maxSends {
		p.Status = StatusFailed
	}
}

func (q *PendingQueue) find(localID int) *PendingWork {
	for _, p := range q.entries {
		if p.LocalID == localID {
			return p
		}
	}
	return nil
}
