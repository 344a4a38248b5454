package app

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/jbclements/t-test/adapters/memory"
	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunRepository is a mock implementation of ports.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Save(ctx context.Context, run *stats.TestRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Get(ctx context.Context, id core.RunID) (*stats.TestRun, error) {
	args := m.Called(ctx, id)
	if run, ok := args.Get(0).(*stats.TestRun); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRunRepository) List(ctx context.Context, limit int) ([]*stats.TestRun, error) {
	args := m.Called(ctx, limit)
	if runs, ok := args.Get(0).([]*stats.TestRun); ok {
		return runs, args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	gauge1 = []float64{30.02, 29.99, 30.11, 29.97, 30.01, 29.99}
	gauge2 = []float64{29.89, 29.93, 29.72, 29.98, 30.02, 29.98}
)

func newService(repo *memory.RunRepository) *TTestService {
	return NewTTestService(repo, config.AnalysisConfig{Alpha: 0.05, MaxConcurrency: 3}, nil)
}

func TestCompute_PersistsRun(t *testing.T) {
	repo := memory.NewRunRepository()
	svc := newService(repo)
	ctx := context.Background()

	run, err := svc.Compute(ctx, TestRequest{Kind: "Welch", Label: "gauges", Sample1: gauge1, Sample2: gauge2})
	require.NoError(t, err)

	assert.Equal(t, stats.TestWelch, run.Kind)
	assert.Equal(t, "gauges", run.Label)
	assert.InDelta(t, 0.09077, run.PValue, 1e-4)
	assert.False(t, run.Significant)
	assert.Equal(t, 0.05, run.Alpha)
	assert.NotEmpty(t, run.ID)

	stored, err := svc.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.PValue, stored.PValue)
}

func TestCompute_SignificantVerdict(t *testing.T) {
	svc := newService(memory.NewRunRepository())

	run, err := svc.Compute(context.Background(), TestRequest{
		Kind:    stats.TestStudent,
		Sample1: []float64{2, 1, 3, 4},
		Sample2: []float64{6, 5, 7, 9},
	})
	require.NoError(t, err)
	assert.True(t, run.Significant)
	assert.Equal(t, 6.0, run.DegreesOfFreedom)
}

func TestCompute_DomainErrorsCarryCodes(t *testing.T) {
	svc := newService(memory.NewRunRepository())
	ctx := context.Background()

	tests := []struct {
		name string
		req  TestRequest
		code string
	}{
		{"unknown kind", TestRequest{Kind: "paired", Sample1: gauge1, Sample2: gauge2}, errors.CodeInvalidInput},
		{"empty sample", TestRequest{Kind: stats.TestStudent, Sample2: gauge2}, errors.CodeEmptySample},
		{"degenerate", TestRequest{Kind: stats.TestWelch, Sample1: []float64{3, 3, 3, 3}, Sample2: []float64{4, 4, 4, 4}}, errors.CodeDegenerateSamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}

	runs, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs, "failed requests must not be persisted")
}

func TestCompute_EmptySampleKeepsPosition(t *testing.T) {
	svc := newService(memory.NewRunRepository())

	_, err := svc.Compute(context.Background(), TestRequest{Kind: stats.TestWelch, Sample1: gauge1})
	require.Error(t, err)
	pos, ok := core.EmptySamplePosition(err)
	require.True(t, ok)
	assert.Equal(t, core.SecondSample, pos)
}

func TestCompute_SaveFailure(t *testing.T) {
	repo := new(MockRunRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*stats.TestRun")).Return(stderrors.New("connection refused"))

	svc := NewTTestService(repo, config.AnalysisConfig{Alpha: 0.05, MaxConcurrency: 1}, nil)
	_, err := svc.Compute(context.Background(), TestRequest{Kind: stats.TestStudent, Sample1: gauge1, Sample2: gauge2})

	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
	repo.AssertExpectations(t)
}

func TestCompute_CancelledContext(t *testing.T) {
	repo := new(MockRunRepository)
	svc := NewTTestService(repo, config.AnalysisConfig{Alpha: 0.05, MaxConcurrency: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compute(ctx, TestRequest{Kind: stats.TestStudent, Sample1: gauge1, Sample2: gauge2})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeCancelled, errors.GetCode(err))
	assert.Equal(t, http.StatusRequestTimeout, errors.HTTPStatus(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestComputeBatch_KeepsOrderAndPerItemErrors(t *testing.T) {
	repo := memory.NewRunRepository()
	svc := newService(repo)
	ctx := context.Background()

	reqs := []TestRequest{
		{Kind: stats.TestStudent, Sample1: gauge1, Sample2: gauge2},
		{Kind: stats.TestWelch, Sample1: []float64{}, Sample2: gauge2},
		{Kind: stats.TestWelch, Sample1: gauge1, Sample2: gauge2},
		{Kind: "bogus", Sample1: gauge1, Sample2: gauge2},
		{Kind: stats.TestStudent, Sample1: []float64{2, 1, 3, 4}, Sample2: []float64{6, 5, 7, 9}},
	}

	items, err := svc.ComputeBatch(ctx, reqs)
	require.NoError(t, err)
	require.Len(t, items, len(reqs))

	for i, item := range items {
		assert.Equal(t, i, item.Index)
	}

	require.NotNil(t, items[0].Run)
	assert.InDelta(t, 0.07857, items[0].Run.PValue, 1e-4)
	assert.Nil(t, items[1].Run)
	assert.Equal(t, errors.CodeEmptySample, items[1].Code)
	require.NotNil(t, items[2].Run)
	assert.Equal(t, stats.TestWelch, items[2].Run.Kind)
	assert.Equal(t, errors.CodeInvalidInput, items[3].Code)
	require.NotNil(t, items[4].Run)

	runs, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestComputeBatch_CancelledContext(t *testing.T) {
	svc := newService(memory.NewRunRepository())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ComputeBatch(ctx, []TestRequest{{Kind: stats.TestStudent, Sample1: gauge1, Sample2: gauge2}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeCancelled, errors.GetCode(err))
}

func TestGet_NotFound(t *testing.T) {
	svc := newService(memory.NewRunRepository())

	_, err := svc.Get(context.Background(), core.NewRunID())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestList_RepositoryFailure(t *testing.T) {
	repo := new(MockRunRepository)
	repo.On("List", mock.Anything, 5).Return(nil, stderrors.New("timeout"))

	svc := NewTTestService(repo, config.AnalysisConfig{Alpha: 0.05, MaxConcurrency: 1}, nil)
	_, err := svc.List(context.Background(), 5)

	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
	repo.AssertExpectations(t)
}
