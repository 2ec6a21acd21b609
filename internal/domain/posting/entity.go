package posting

import (
	"time"

	"internlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle               = errs.New("posting title is empty")
	ErrMissingOwner             = errs.New("posting requires an owner")
	ErrNotPublishable           = errs.New("posting cannot be published in its current state")
	ErrInvalidApplicationStatus = errs.New("invalid application status")
)

// Posting is the aggregate root owning microtasks. It is the consistency
// boundary for every microtask transition: all mutations go through a
// single read-modify-write path guarded by the version counter.
type Posting struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	description string
	status      PostingStatus
	tasks       map[uuid.UUID]*Microtask
	taskOrder   []uuid.UUID
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPosting(ownerID uuid.UUID, title, description string, now time.Time) (*Posting, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Posting{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		description: description,
		status:      PostingDraft,
		tasks:       map[uuid.UUID]*Microtask{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Posting from persisted state. Task order follows
// the slice order.
func Reconstruct(id, ownerID uuid.UUID, title, description string, status PostingStatus, tasks []*Microtask, version int64, createdAt, updatedAt time.Time) *Posting {
	p := &Posting{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		description: description,
		status:      status,
		tasks:       make(map[uuid.UUID]*Microtask, len(tasks)),
		taskOrder:   make([]uuid.UUID, 0, len(tasks)),
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
	for _, t := range tasks {
		p.tasks[t.ID()] = t
		p.taskOrder = append(p.taskOrder, t.ID())
	}
	return p
}

func (p *Posting) Publish(callerID uuid.UUID, now time.Time) error {
	if callerID != p.ownerID {
		return errs.ErrNotPostingOwner
	}
	if p.status == PostingClosed {
		return ErrNotPublishable
	}
	p.status = PostingPublished
	p.updatedAt = now
	return nil
}

// AssignTask creates a microtask on the posting. Owner-only.
func (p *Posting) AssignTask(callerID uuid.UUID, spec TaskSpec, now time.Time) (*Microtask, error) {
	if callerID != p.ownerID {
		return nil, errs.ErrNotPostingOwner
	}
	task, err := NewMicrotask(spec, now)
	if err != nil {
		return nil, err
	}
	p.tasks[task.ID()] = task
	p.taskOrder = append(p.taskOrder, task.ID())
	p.updatedAt = now
	return task, nil
}

// SubmitTask runs the submit transition on the addressed task.
func (p *Posting) SubmitTask(taskID, submitterID uuid.UUID, sub Submission, now time.Time) (*Microtask, error) {
	task, ok := p.tasks[taskID]
	if !ok {
		return nil, errs.ErrMicrotaskNotFound
	}
	sub.SubmittedAt = now
	if err := task.submit(submitterID, sub); err != nil {
		return nil, err
	}
	p.updatedAt = now
	return task, nil
}

// GradeTask applies a manual grade. Owner-only.
func (p *Posting) GradeTask(graderID, taskID uuid.UUID, score int, feedback string, now time.Time) (*Microtask, error) {
	if graderID != p.ownerID {
		return nil, errs.ErrNotPostingOwner
	}
	task, ok := p.tasks[taskID]
	if !ok {
		return nil, errs.ErrMicrotaskNotFound
	}
	if err := task.applyGrade(score, feedback); err != nil {
		return nil, err
	}
	p.updatedAt = now
	return task, nil
}

func (p *Posting) Task(taskID uuid.UUID) (*Microtask, bool) {
	t, ok := p.tasks[taskID]
	return t, ok
}

// Tasks returns the microtasks in creation order.
func (p *Posting) Tasks() []*Microtask {
	out := make([]*Microtask, 0, len(p.taskOrder))
	for _, id := range p.taskOrder {
		out = append(out, p.tasks[id])
	}
	return out
}

func (p *Posting) ID() uuid.UUID        { return p.id }
func (p *Posting) OwnerID() uuid.UUID   { return p.ownerID }
func (p *Posting) Title() string        { return p.title }
func (p *Posting) Description() string  { return p.description }
func (p *Posting) Status() PostingStatus { return p.status }
func (p *Posting) Version() int64       { return p.version }
func (p *Posting) CreatedAt() time.Time { return p.createdAt }
func (p *Posting) UpdatedAt() time.Time { return p.updatedAt }
