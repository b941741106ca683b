// Package domain holds the entities and request schemas of the booking service.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

const (
	DefaultMaxSlots = 30
	MinPosition     = 1
	MaxPosition     = 30
)

// Queue is a time-slotted waiting list with a capacity of MaxSlots.
type Queue struct {
	bun.BaseModel `bun:"table:queues,alias:q"`

	ID        int64     `bun:"id,pk,autoincrement"            json:"id"`
	Name      string    `bun:"name,notnull"                   json:"name"`
	StartTime time.Time `bun:"start_time,notnull,type:date"   json:"start_time"`
	MaxSlots  int       `bun:"max_slots,notnull,default:30"   json:"max_slots"`

	Entries []QueueEntry `bun:"rel:has-many,join:id=queue_id" json:"entries,omitempty"`
	Tags    []Tag        `bun:"m2m:queue_tags,join:Queue=Tag" json:"tags,omitempty"`
}

// QueueEntry is one user holding one position of a queue.
type QueueEntry struct {
	bun.BaseModel `bun:"table:queue_entries,alias:qe"`

	ID       int64     `bun:"id,pk,autoincrement"     json:"id"`
	QueueID  int64     `bun:"queue_id,notnull,unique:uq_queue_position,unique:uq_queue_user" json:"queue_id"`
	UserID   uuid.UUID `bun:"user_id,notnull,type:uuid,unique:uq_queue_user"                 json:"user_id"`
	Position int       `bun:"position,notnull,unique:uq_queue_position"                      json:"position"`

	Queue *Queue `bun:"rel:belongs-to,join:queue_id=id,on_delete:CASCADE" json:"-"`

	User *User `bun:"rel:belongs-to,join:user_id=id,on_delete:CASCADE" json:"user,omitempty"`
}

type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

// QueueTag links a queue to a tag.
type QueueTag struct {
	bun.BaseModel `bun:"table:queue_tags,alias:qt"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	QueueID int64  `bun:"queue_id,notnull,unique:uq_queue_tag" json:"queue_id"`
	Queue   *Queue `bun:"rel:belongs-to,join:queue_id=id"      json:"-"`
	TagID   int64  `bun:"tag_id,notnull,unique:uq_queue_tag"   json:"tag_id"`
	Tag     *Tag   `bun:"rel:belongs-to,join:tag_id=id"   json:"-"`
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"        json:"id"`
	Email       string    `bun:"email,notnull,unique"   json:"email"`
	FirstName   string    `bun:"first_name,notnull"     json:"first_name"`
	LastName    string    `bun:"last_name,notnull"      json:"last_name"`
	IsSuperuser bool      `bun:"is_superuser,notnull,default:false" json:"is_superuser"`
}

// AuditValue keeps the identifying part of a user in audit records.
func (u *User) AuditValue() any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":         u.ID.String(),
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

// RegisterModels registers the join tables m2m relations go through.
// It must run before any table metadata of the domain is resolved.
func RegisterModels(d schema.Dialect) {
	d.Tables().Register((*QueueTag)(nil))
}
