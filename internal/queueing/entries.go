// Package queueing wires the booking entities into the generic repository and
// service layers and adds the queue-entry rules.
package queueing

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/repogen"
	"github.com/rise-and-shine/queuebook/service"
)

const (
	CodeDuplicateEntry = "DUPLICATE_ENTRY"
	CodeQueueFull      = "QUEUE_FULL"
)

type (
	QueueService    = service.Service[domain.Queue, repogen.Repository[domain.Queue]]
	TagService      = service.Service[domain.Tag, repogen.Repository[domain.Tag]]
	QueueTagService = service.Service[domain.QueueTag, repogen.Repository[domain.QueueTag]]
	UserService     = service.Service[domain.User, repogen.Repository[domain.User]]
)

// QueueEntryService books positions in queues.
type QueueEntryService struct {
	*service.Service[domain.QueueEntry, repogen.Repository[domain.QueueEntry]]

	queues *QueueService
}

func NewQueueEntryService(entries repogen.Repository[domain.QueueEntry], queues *QueueService) *QueueEntryService {
	return &QueueEntryService{
		Service: service.New[domain.QueueEntry](entries, "queue_entry"),
		queues:  queues,
	}
}

// Create books entry.Position in entry.QueueID for entry.UserID. A zero
// position takes the lowest free one. A user may hold one position per queue.
func (s *QueueEntryService) Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error) {
	queue, err := s.queues.GetByID(ctx, entry.QueueID)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	taken, err := s.Repository().FindByFilter(ctx, map[string]any{"queue_id": entry.QueueID})
	if err != nil {
		return nil, service.Classified(err)
	}

	details := errx.D{"queue_id": entry.QueueID, "user_id": entry.UserID.String()}

	for _, e := range taken {
		if e.UserID == entry.UserID {
			return nil, errx.New(
				"user already holds a position in this queue",
				errx.WithCode(CodeDuplicateEntry),
				errx.WithType(errx.T_Conflict),
				errx.WithDetails(details),
			)
		}
	}

	if entry.Position == 0 {
		entry.Position = nextFreePosition(taken)
	}

	if entry.Position > queue.MaxSlots {
		details["position"] = entry.Position
		details["max_slots"] = queue.MaxSlots
		return nil, errx.New(
			"queue has no free slot at this position",
			errx.WithCode(CodeQueueFull),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(details),
		)
	}

	return s.Service.Create(ctx, entry)
}

// DeleteAll removes every entry matching conditions and returns how many were removed.
func (s *QueueEntryService) DeleteAll(ctx context.Context, conditions map[string]any) (int, error) {
	deleted, err := s.Repository().DeleteAllByFilter(ctx, conditions)
	if err != nil {
		return 0, service.Classified(err)
	}
	if len(deleted) == 0 {
		return 0, s.NotFound(errx.D{"conditions": conditions})
	}
	return len(deleted), nil
}

func nextFreePosition(taken []domain.QueueEntry) int {
	used := make(map[int]struct{}, len(taken))
	for _, e := range taken {
		used[e.Position] = struct{}{}
	}

	pos := domain.MinPosition
	for {
		if _, ok := used[pos]; !ok {
			return pos
		}
		pos++
	}
}
