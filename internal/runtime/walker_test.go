package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/wordgraph/internal/adapters/memory"
	"github.com/aretw0/wordgraph/internal/runtime"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTraceStore struct {
	mock.Mock
}

func (m *MockTraceStore) Save(ctx context.Context, id string, trace domain.Trace) error {
	args := m.Called(ctx, id, trace)
	return args.Error(0)
}

func (m *MockTraceStore) Load(ctx context.Context, id string) (domain.Trace, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(domain.Trace), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTraceStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTraceStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func TestWalker_CyclePersistsTrace(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}), runtime.WithTraceStore(store))

	var last domain.StepResult
	steps := 0
	for !last.Kind.Terminal() {
		var err error
		last, err = walker.Step(ctx)
		require.NoError(t, err)
		steps++
		require.LessOrEqual(t, steps, 3)
	}

	assert.Equal(t, domain.StepCycleDetected, last.Kind)

	trace, err := store.Load(ctx, runtime.DefaultSessionID)
	require.NoError(t, err)
	assert.Equal(t, "a -> b -> a -> b\n", trace.Text())
}

func TestWalker_NoTraceBeforeTermination(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}),
		runtime.WithTraceStore(store),
		runtime.WithSessionID("walk-1"),
	)

	_, err := walker.Step(ctx)
	require.NoError(t, err)

	_, err = store.Load(ctx, "walk-1")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	assert.Equal(t, "walk-1", walker.SessionID())
}

func TestWalker_EmptyGraph(t *testing.T) {
	walker := runtime.NewWalker(runtime.NewWalkEngine(domain.NewWordGraph(), fixedRand{}))

	res, err := walker.Step(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyGraph)
	assert.Equal(t, domain.StepEmptyGraph, res.Kind)
	assert.Equal(t, domain.WalkIdle, walker.State().Status)
}

func TestWalker_TraceWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockTraceStore)
	store.On("Save", mock.Anything, runtime.DefaultSessionID, domain.Trace{"a", "b"}).
		Return(errors.New("disk full"))

	g := domain.NewWordGraph()
	g.AddEdge("a", "b")

	var ended []*domain.WalkEvent
	walker := runtime.NewWalker(runtime.NewWalkEngine(g, fixedRand{}),
		runtime.WithTraceStore(store),
		runtime.WithWalkHooks(domain.LifecycleHooks{
			OnWalkEnd: func(_ context.Context, e *domain.WalkEvent) { ended = append(ended, e) },
		}),
	)

	_, err := walker.Step(ctx)
	require.NoError(t, err)

	res, err := walker.Step(ctx)
	assert.ErrorIs(t, err, domain.ErrTraceWrite)
	assert.Equal(t, domain.StepDeadEnd, res.Kind)
	assert.Equal(t, []string{"a", "b"}, res.Path)
	assert.Equal(t, domain.WalkTerminated, walker.State().Status)

	require.Len(t, ended, 1)
	assert.ErrorContains(t, ended[0].Err, "disk full")
	store.AssertExpectations(t)
}

func TestWalker_Hooks(t *testing.T) {
	var steps, ends int
	var lastEnd domain.WalkEvent
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}),
		runtime.WithSessionID("hooked"),
		runtime.WithWalkHooks(domain.LifecycleHooks{
			OnWalkStep: func(_ context.Context, e *domain.WalkEvent) {
				assert.Equal(t, domain.EventWalkStep, e.Type)
				steps++
			},
			OnWalkEnd: func(_ context.Context, e *domain.WalkEvent) {
				lastEnd = *e
				ends++
			},
		}),
	)

	res, err := walker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StepCycleDetected, res.Kind)

	assert.Equal(t, 3, steps)
	assert.Equal(t, 1, ends)
	assert.Equal(t, "hooked", lastEnd.SessionID)
	assert.Equal(t, 3, lastEnd.Hops)
	assert.Equal(t, domain.EventWalkEnd, lastEnd.Type)
}

func TestWalker_Reset(t *testing.T) {
	ctx := context.Background()
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}))

	_, err := walker.Step(ctx)
	require.NoError(t, err)
	require.True(t, walker.State().Walking())

	walker.Reset()
	state := walker.State()
	assert.Equal(t, domain.WalkIdle, state.Status)
	assert.Empty(t, state.Path)
	assert.Empty(t, state.Current)

	res, err := walker.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Path)
}

func TestWalker_StepAfterTerminationStartsNewWalk(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}), runtime.WithTraceStore(store))

	_, err := walker.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a", "b"}, walker.State().Path, "terminated state keeps its path")

	res, err := walker.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAdvanced, res.Kind)
	assert.Equal(t, []string{"a", "b"}, res.Path)
}

func TestWalker_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}))
	_, err := walker.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.WalkIdle, walker.State().Status)
}

func TestWalker_StateIsSnapshot(t *testing.T) {
	walker := runtime.NewWalker(runtime.NewWalkEngine(twoCycle(), fixedRand{}))
	_, err := walker.Step(context.Background())
	require.NoError(t, err)

	state := walker.State()
	state.Path[0] = "mutated"
	assert.Equal(t, "a", walker.State().Path[0])
}
