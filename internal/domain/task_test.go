package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanChangeTaskStatus(t *testing.T) {
	tests := []struct {
		name string
		from TaskStatus
		to   TaskStatus
		want bool
	}{
		{"active to paused", TaskActive, TaskPaused, true},
		{"paused to active", TaskPaused, TaskActive, true},
		{"active to completed", TaskActive, TaskCompleted, true},
		{"paused to completed", TaskPaused, TaskCompleted, true},
		{"completed is terminal", TaskCompleted, TaskActive, false},
		{"completed cannot pause", TaskCompleted, TaskPaused, false},
		{"same status is not a change", TaskActive, TaskActive, false},
		{"unknown status", TaskStatus("archived"), TaskActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanChangeTaskStatus(tt.from, tt.to))
		})
	}
}
