package domain_test

import (
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/auditlog"
	"github.com/rise-and-shine/queuebook/internal/domain"
	"github.com/rise-and-shine/queuebook/val"
)

func TestUserAuditValueHidesCredentials(t *testing.T) {
	id := uuid.New()
	u := &domain.User{ID: id, Email: "a@b.c", FirstName: "Ada", LastName: "Lovelace"}

	params := auditlog.Params{{Name: "user", Value: u}}.Snapshot(nil)
	assert.Equal(t, map[string]any{
		"id":         id.String(),
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}, params["user"])

	var none *domain.User
	assert.Nil(t, none.AuditValue())
}

func TestCreateQueueDefaults(t *testing.T) {
	in := &domain.CreateQueue{Name: "Dentist", StartTime: time.Now().Add(time.Hour)}
	assert.Equal(t, domain.DefaultMaxSlots, in.Entity().MaxSlots)

	slots := 5
	in.MaxSlots = &slots
	assert.Equal(t, 5, in.Entity().MaxSlots)
}

func TestPatchQueueValues(t *testing.T) {
	name := "Barber"
	p := &domain.PatchQueue{QueueID: 3, Name: &name}
	assert.Equal(t, map[string]any{"name": "Barber"}, p.Values())
	assert.Empty(t, (&domain.PatchQueue{QueueID: 3}).Values())
}

func TestSchemaValidation(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	tooMany := 31

	tests := []struct {
		name    string
		schema  any
		wantErr bool
	}{
		{name: "valid queue", schema: &domain.CreateQueue{Name: "Dentist", StartTime: future}},
		{name: "queue in the past", schema: &domain.CreateQueue{Name: "Dentist", StartTime: past}, wantErr: true},
		{name: "queue name too long", schema: &domain.CreateQueue{Name: "VeryLongName", StartTime: future}, wantErr: true},
		{name: "too many slots", schema: &domain.CreateQueue{Name: "A", StartTime: future, MaxSlots: &tooMany}, wantErr: true},
		{name: "entry without user", schema: &domain.CreateQueueEntry{QueueID: 1}, wantErr: true},
		{name: "entry", schema: &domain.CreateQueueEntry{QueueID: 1, User: &domain.User{ID: uuid.New()}}},
		{name: "tag name too long", schema: &domain.CreateTag{Name: "abcdefghijklmnop"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := val.ValidateSchema(tc.schema)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, val.CodeValidationFailed))
		})
	}
}
