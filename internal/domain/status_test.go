package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current WorkerStatus
		trigger StatusTrigger
		want    WorkerStatus
		wantErr bool
	}{
		{
			name:    "documents submitted moves upload pending to verification",
			current: StatusDocumentUploadPending,
			trigger: TriggerDocumentsSubmitted,
			want:    StatusVerificationPending,
		},
		{
			name:    "all documents approved moves verification to interview pending",
			current: StatusVerificationPending,
			trigger: TriggerAllDocumentsApproved,
			want:    StatusInterviewPending,
		},
		{
			name:    "interview scheduled moves interview pending to scheduled",
			current: StatusInterviewPending,
			trigger: TriggerInterviewScheduled,
			want:    StatusInterviewScheduled,
		},
		{
			name:    "reschedule keeps interview scheduled",
			current: StatusInterviewScheduled,
			trigger: TriggerInterviewScheduled,
			want:    StatusInterviewScheduled,
		},
		{
			name:    "interview selected promotes to active employee",
			current: StatusInterviewScheduled,
			trigger: TriggerInterviewSelected,
			want:    StatusActiveEmployee,
		},
		{
			name:    "re-promotion of active employee is a no-op",
			current: StatusActiveEmployee,
			trigger: TriggerInterviewSelected,
			want:    StatusActiveEmployee,
		},
		{
			name:    "interview rejected moves to rejected",
			current: StatusInterviewScheduled,
			trigger: TriggerInterviewRejected,
			want:    StatusRejected,
		},
		{
			name:    "employer verification skips the interview track",
			current: StatusVerificationPending,
			trigger: TriggerEmployerVerified,
			want:    StatusActiveEmployee,
		},
		{
			name:    "application rejected from upload pending",
			current: StatusDocumentUploadPending,
			trigger: TriggerApplicationRejected,
			want:    StatusRejected,
		},
		{
			name:    "application rejected from interview scheduled",
			current: StatusInterviewScheduled,
			trigger: TriggerApplicationRejected,
			want:    StatusRejected,
		},
		{
			name:    "documents submitted is illegal past verification",
			current: StatusInterviewPending,
			trigger: TriggerDocumentsSubmitted,
			wantErr: true,
		},
		{
			name:    "interview selected without a scheduled interview is illegal",
			current: StatusVerificationPending,
			trigger: TriggerInterviewSelected,
			wantErr: true,
		},
		{
			name:    "rejected is terminal",
			current: StatusRejected,
			trigger: TriggerDocumentsSubmitted,
			wantErr: true,
		},
		{
			name:    "active employee cannot be rejected",
			current: StatusActiveEmployee,
			trigger: TriggerApplicationRejected,
			wantErr: true,
		},
		{
			name:    "unknown trigger is illegal",
			current: StatusDocumentUploadPending,
			trigger: StatusTrigger("vibes"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.trigger)

			if tt.wantErr {
				require.Error(t, err)

				var transitionErr *IllegalTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, tt.current, transitionErr.Current)
				assert.Equal(t, tt.trigger, transitionErr.Trigger)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionsOnlyReachKnownStatuses(t *testing.T) {
	for current, triggers := range transitions {
		assert.True(t, IsValidWorkerStatus(current), "unknown source status %q", current)
		for trigger, next := range triggers {
			assert.True(t, IsValidWorkerStatus(next),
				"transition %q + %q reaches unknown status %q", current, trigger, next)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusActiveEmployee))

	assert.False(t, IsTerminal(StatusDocumentUploadPending))
	assert.False(t, IsTerminal(StatusVerificationPending))
	assert.False(t, IsTerminal(StatusInterviewPending))
	assert.False(t, IsTerminal(StatusInterviewScheduled))

	// Active employees stay in the graph for idempotent re-promotion,
	// but the trigger never moves them anywhere else.
	next, err := NextStatus(StatusActiveEmployee, TriggerInterviewSelected)
	require.NoError(t, err)
	assert.Equal(t, StatusActiveEmployee, next)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusDocumentUploadPending, InitialStatus(RoleWorker))
	assert.Equal(t, StatusVerificationPending, InitialStatus(RoleEmployer))
}
