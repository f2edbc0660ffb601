package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/provisioning"
)

type recordingObserver struct {
	events *[]provisioning.Event
}

func newRecordingObserver() recordingObserver {
	return recordingObserver{events: &[]provisioning.Event{}}
}

func (o recordingObserver) Event(e provisioning.Event) { *o.events = append(*o.events, e) }

func (o recordingObserver) WithFields(map[string]string) provisioning.Observer { return o }

func (o recordingObserver) has(t provisioning.EventType) bool {
	for _, e := range *o.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func newTestStager(store *fakeStore, sched SchedulerResourceUploader, observer provisioning.Observer) *Stager {
	p := NewProvisioner(store, &StaticNames{Names: []string{"stage-1"}}, nil, nil)
	u := NewUploader(store, testRoots(), sched, nil, nil)
	return NewStager(p, u, observer, nil)
}

func TestStager_NoArtifactsNoBucket(t *testing.T) {
	t.Parallel()

	for _, s := range []config.Scheduler{config.SchedulerSGE, config.SchedulerTorque} {
		t.Run(string(s), func(t *testing.T) {
			t.Parallel()
			store := &fakeStore{}
			stager := newTestStager(store, nil, nil)

			bucket, err := stager.ProvisionStagingBucket(context.Background(), &config.DeploymentConfig{Region: "eu-west-1", Scheduler: s}, nil)

			require.NoError(t, err)
			assert.Empty(t, bucket)
			assert.Empty(t, store.CreateBucketCalls)
			assert.Empty(t, store.UploadDirectoryCalls)
		})
	}
}

func TestStager_UnknownScheduler(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	stager := newTestStager(store, nil, nil)

	state, err := stager.Stage(context.Background(), &config.DeploymentConfig{Scheduler: "pbs"}, nil)

	require.Error(t, err)
	var cerr *config.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "scheduler", cerr.Field)
	assert.Equal(t, provisioning.StatusFailed, state.Status)
	assert.Empty(t, store.CreateBucketCalls)
}

func TestStager_StateHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		store   *fakeStore
		history []provisioning.Status
	}{
		{
			name:  "success",
			store: &fakeStore{},
			history: []provisioning.Status{
				provisioning.StatusStart, provisioning.StatusBucketReady, provisioning.StatusProvisioned,
			},
		},
		{
			name: "create failure",
			store: &fakeStore{CreateBucketFunc: func(context.Context, string, string) error {
				return apiError("AccessDenied")
			}},
			history: []provisioning.Status{provisioning.StatusStart, provisioning.StatusFailed},
		},
		{
			name: "upload failure",
			store: &fakeStore{UploadDirectoryFunc: func(context.Context, string, string, string) error {
				return errors.New("denied")
			}},
			history: []provisioning.Status{
				provisioning.StatusStart, provisioning.StatusBucketReady, provisioning.StatusCleaning, provisioning.StatusFailed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stager := newTestStager(tt.store, nil, nil)
			state, _ := stager.Stage(context.Background(), &config.DeploymentConfig{Region: "eu-west-1", Scheduler: config.SchedulerSlurm}, nil)
			assert.Equal(t, tt.history, state.History)
		})
	}
}

func TestStager_ObserverEvents(t *testing.T) {
	t.Parallel()
	deleteErr := errors.New("delete failed")
	store := &fakeStore{
		DeleteBucketFunc: func(context.Context, string) error { return deleteErr },
	}
	sched := &mockSchedulerUploader{}
	sched.On("UploadSchedulerResources", mock.Anything, "stage-1", mock.Anything, mock.Anything).Return(errors.New("boom"))
	observer := newRecordingObserver()
	stager := newTestStager(store, sched, observer)

	_, err := stager.ProvisionStagingBucket(context.Background(), &config.DeploymentConfig{Region: "eu-west-1", Scheduler: config.SchedulerAWSBatch}, nil)

	require.Error(t, err)
	assert.True(t, observer.has(provisioning.EventResourceCreated))
	assert.True(t, observer.has(provisioning.EventResourceFailed))
	assert.True(t, observer.has(provisioning.EventValidationWarning))
	assert.False(t, observer.has(provisioning.EventResourceDeleted))
	assert.True(t, observer.has(provisioning.EventPhaseFailed))
}

func TestStager_CanceledAfterCreateDeletesBucket(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeStore{
		CreateBucketFunc: func(context.Context, string, string) error {
			cancel()
			return nil
		},
		DeleteBucketFunc: func(ctx context.Context, _ string) error {
			return ctx.Err()
		},
	}
	stager := newTestStager(store, nil, nil)

	state, err := stager.Stage(ctx, &config.DeploymentConfig{Region: "eu-west-1", Scheduler: config.SchedulerSlurm}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "stage-1", uerr.Bucket)
	assert.Equal(t, notStartedStep, uerr.Step)
	assert.True(t, uerr.CleanupAttempted)
	assert.Nil(t, uerr.Cleanup)

	assert.Equal(t, []string{"stage-1"}, store.DeleteBucketCalls)
	assert.Empty(t, store.UploadDirectoryCalls)
	assert.Equal(t, provisioning.StatusFailed, state.Status)
	assert.Equal(t, []provisioning.Status{
		provisioning.StatusStart, provisioning.StatusBucketReady, provisioning.StatusCleaning, provisioning.StatusFailed,
	}, state.History)
}

func TestStager_CleaningRecordedBeforeDelete(t *testing.T) {
	t.Parallel()
	observer := newRecordingObserver()
	var lastBeforeDelete provisioning.EventType
	store := &fakeStore{
		UploadDirectoryFunc: func(context.Context, string, string, string) error {
			return errors.New("denied")
		},
	}
	store.DeleteBucketFunc = func(context.Context, string) error {
		events := *observer.events
		lastBeforeDelete = events[len(events)-1].Type
		return nil
	}
	stager := newTestStager(store, nil, observer)

	_, err := stager.Stage(context.Background(), &config.DeploymentConfig{Region: "eu-west-1", Scheduler: config.SchedulerSlurm}, nil)

	require.Error(t, err)
	assert.Equal(t, provisioning.EventResourceDeleting, lastBeforeDelete)
	assert.True(t, observer.has(provisioning.EventResourceDeleted))
}

func TestStager_CreateFailureNamesBucket(t *testing.T) {
	t.Parallel()
	observer := newRecordingObserver()
	store := &fakeStore{CreateBucketFunc: func(context.Context, string, string) error {
		return apiError("AccessDenied")
	}}
	stager := newTestStager(store, nil, observer)

	_, err := stager.Stage(context.Background(), &config.DeploymentConfig{Region: "eu-west-1", Scheduler: config.SchedulerSlurm}, nil)

	require.Error(t, err)
	for _, e := range *observer.events {
		if e.Type == provisioning.EventResourceFailed {
			assert.Equal(t, "stage-1", e.Resource)
			return
		}
	}
	t.Fatal("no resource failure event recorded")
}
