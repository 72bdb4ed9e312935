package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainerrors "parcel/internal/domain/errors"
)

func TestValidateScheduleTime(t *testing.T) {
	t.Parallel()

	// A weekday mid-morning reference point.
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{
			name: "valid afternoon slot tomorrow",
			at:   time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly one hour ahead",
			at:   now.Add(time.Hour),
		},
		{
			name:    "under one hour ahead",
			at:      now.Add(59 * time.Minute),
			wantErr: domainerrors.ErrScheduleTooSoon,
		},
		{
			name:    "in the past",
			at:      now.Add(-time.Hour),
			wantErr: domainerrors.ErrScheduleTooSoon,
		},
		{
			name: "exactly seven days ahead",
			at:   now.Add(7 * 24 * time.Hour),
		},
		{
			name:    "over seven days ahead",
			at:      now.Add(7*24*time.Hour + time.Minute),
			wantErr: domainerrors.ErrScheduleTooFar,
		},
		{
			name: "opening edge 06:00",
			at:   time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name:    "before opening",
			at:      time.Date(2026, 3, 15, 5, 59, 0, 0, time.UTC),
			wantErr: domainerrors.ErrScheduleOutsideHours,
		},
		{
			name: "last slot 21:59",
			at:   time.Date(2026, 3, 15, 21, 59, 0, 0, time.UTC),
		},
		{
			name:    "closing edge 22:00",
			at:      time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC),
			wantErr: domainerrors.ErrScheduleOutsideHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateScheduleTime(tt.at, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMintPIN(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 50 {
		pin := MintPIN()
		assert.Len(t, pin, 4)
		for _, r := range pin {
			assert.GreaterOrEqual(t, r, '0')
			assert.LessOrEqual(t, r, '9')
		}
		seen[pin] = true
	}

	// 50 draws from 10000 values should not all collide.
	assert.Greater(t, len(seen), 1)
}
