package domain

import "time"

type CreateQueue struct {
	Name      string    `json:"name"       validate:"required,max=10"`
	StartTime time.Time `json:"start_time" validate:"required,future"`
	MaxSlots  *int      `json:"max_slots"  validate:"omitempty,gte=1,lte=30"`

	User *User `json:"-"`
}

func (c *CreateQueue) Entity() *Queue {
	q := &Queue{Name: c.Name, StartTime: c.StartTime, MaxSlots: DefaultMaxSlots}
	if c.MaxSlots != nil {
		q.MaxSlots = *c.MaxSlots
	}
	return q
}

func (c *CreateQueue) AuditValue() any {
	return map[string]any{"name": c.Name, "start_time": c.StartTime, "max_slots": c.MaxSlots}
}

// PatchQueue changes the fields that are set.
type PatchQueue struct {
	QueueID   int64      `params:"queue_id"  json:"-"          validate:"required,gt=0"`
	Name      *string    `json:"name"        validate:"omitempty,max=10"`
	StartTime *time.Time `json:"start_time"  validate:"omitempty,future"`
	MaxSlots  *int       `json:"max_slots"   validate:"omitempty,gte=1,lte=30"`

	User *User `json:"-"`
}

// Values returns the column values to set.
func (p *PatchQueue) Values() map[string]any {
	values := make(map[string]any)
	if p.Name != nil {
		values["name"] = *p.Name
	}
	if p.StartTime != nil {
		values["start_time"] = *p.StartTime
	}
	if p.MaxSlots != nil {
		values["max_slots"] = *p.MaxSlots
	}
	return values
}

func (p *PatchQueue) AuditValue() any {
	return p.Values()
}

// QueueRef addresses a queue by its path id.
type QueueRef struct {
	QueueID int64 `params:"queue_id" validate:"required,gt=0"`

	User *User `json:"-"`
}

type CreateQueueEntry struct {
	QueueID int64 `params:"queue_id" json:"-" validate:"required,gt=0"`
	// Position is assigned automatically when omitted.
	Position *int `json:"position" validate:"omitempty,gte=1,lte=30"`

	User *User `json:"-" validate:"required"`
}

func (c *CreateQueueEntry) Entity() *QueueEntry {
	e := &QueueEntry{QueueID: c.QueueID}
	if c.User != nil {
		e.UserID = c.User.ID
	}
	if c.Position != nil {
		e.Position = *c.Position
	}
	return e
}

func (c *CreateQueueEntry) AuditValue() any {
	return map[string]any{"queue_id": c.QueueID, "position": c.Position}
}

type CreateTag struct {
	Name string `json:"name" validate:"required,max=15"`
}

type PatchTag struct {
	TagID int64  `params:"tag_id" json:"-"   validate:"required,gt=0"`
	Name  string `json:"name"     validate:"required,max=15"`
}

type TagRef struct {
	TagID int64 `params:"tag_id" validate:"required,gt=0"`
}

type CreateQueueTag struct {
	QueueID int64 `json:"queue_id" validate:"required,gt=0"`
	TagID   int64 `json:"tag_id"   validate:"required,gt=0"`
}

func (c *CreateQueueTag) Entity() *QueueTag {
	return &QueueTag{QueueID: c.QueueID, TagID: c.TagID}
}

type QueueTagRef struct {
	QueueTagID int64 `params:"queue_tag_id" validate:"required,gt=0"`
}
