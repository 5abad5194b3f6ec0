package listpush

import (
	"context"
	"log"

	"pantry-sync-backend/internal/model"
)

// Job asks for one pantry item to be put on a shopping list.
type Job struct {
	ItemID string
	ListID string
}

// PantryItems is the subset of the pantry reconciler the pool needs.
type PantryItems interface {
	Get(ctx context.Context, id string) (model.PantryItem, bool, error)
	SetInList(ctx context.Context, id string, inList bool) error
}

// Lists is the subset of the list cache the pool needs.
type Lists interface {
	Get(listID string) (model.ListDetail, bool)
	AppendLocal(listID, label string, section *string) (model.ListItem, error)
}

// Notifier is told about every item that lands on a list.
type Notifier interface {
	ItemAdded(ctx context.Context, itemName, listLabel string)
}

// WorkerPool pushes pantry items onto shopping lists in the background.
type WorkerPool struct {
	size     int
	jobs     chan Job
	pantry   PantryItems
	lists    Lists
	notifier Notifier
	done     func(Job, error)
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, pantry PantryItems, lists Lists, notifier Notifier) *WorkerPool {
	return &WorkerPool{
		size:     size,
		jobs:     make(chan Job, size),
		pantry:   pantry,
		lists:    lists,
		notifier: notifier,
		done:     func(Job, error) {},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("List push worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Worker %d pushing item %s to list %s", id, job.ItemID, job.ListID)
			err := wp.push(ctx, job)
			if err != nil {
				log.Printf("Error pushing item %s to list %s: %v", job.ItemID, job.ListID, err)
			}
			wp.done(job, err)
		case <-ctx.Done():
			log.Printf("List push worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a job, giving up if ctx ends first.
func (wp *WorkerPool) Dispatch(ctx context.Context, job Job) error {
	select {
	case wp.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// push appends the item to the cached list under its category label and marks it as listed.
func (wp *WorkerPool) push(ctx context.Context, job Job) error {
	item, ok, err := wp.pantry.Get(ctx, job.ItemID)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("Pantry item %s no longer exists; skipping", job.ItemID)
		return nil
	}

	section := item.Category.Label()
	if _, err := wp.lists.AppendLocal(job.ListID, item.Name, &section); err != nil {
		return err
	}
	if err := wp.pantry.SetInList(ctx, item.ID, true); err != nil {
		return err
	}

	listLabel := job.ListID
	if detail, ok := wp.lists.Get(job.ListID); ok && detail.List.Attributes.Label != "" {
		listLabel = detail.List.Attributes.Label
	}
	wp.notifier.ItemAdded(ctx, item.Name, listLabel)
	return nil
}
