package campaign

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsLive(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		active bool
		start  time.Time
		end    time.Time
		want   bool
	}{
		{
			name:   "inside window and active",
			active: true,
			start:  now.AddDate(0, 0, -7),
			end:    now.AddDate(0, 0, 7),
			want:   true,
		},
		{
			name:   "inactive inside window",
			active: false,
			start:  now.AddDate(0, 0, -7),
			end:    now.AddDate(0, 0, 7),
			want:   false,
		},
		{
			name:   "not yet started",
			active: true,
			start:  now.AddDate(0, 0, 1),
			end:    now.AddDate(0, 0, 7),
			want:   false,
		},
		{
			name:   "already ended",
			active: true,
			start:  now.AddDate(0, 0, -7),
			end:    now.AddDate(0, 0, -1),
			want:   false,
		},
		{
			name:   "starts exactly now",
			active: true,
			start:  now,
			end:    now.AddDate(0, 0, 7),
			want:   true,
		},
		{
			name:   "ends exactly now",
			active: true,
			start:  now.AddDate(0, 0, -7),
			end:    now,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCampaign(uuid.New(), "summer", tt.start, tt.end)
			c.Active = tt.active
			assert.Equal(t, tt.want, c.IsLive(now))
		})
	}
}

func TestCampaignValidate(t *testing.T) {
	now := time.Now()

	valid := NewCampaign(uuid.New(), "summer", now, now.AddDate(0, 1, 0))
	assert.NoError(t, valid.Validate())

	missingClient := NewCampaign(uuid.Nil, "summer", now, now.AddDate(0, 1, 0))
	assert.Error(t, missingClient.Validate())

	missingName := NewCampaign(uuid.New(), "", now, now.AddDate(0, 1, 0))
	assert.Error(t, missingName.Validate())

	invertedWindow := NewCampaign(uuid.New(), "summer", now, now.AddDate(0, -1, 0))
	assert.Error(t, invertedWindow.Validate())
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("acme")
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.True(t, c.Active)
	assert.Equal(t, "acme", c.Name)
}
