package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jbclements/t-test/adapters/stats/ttest"
	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/internal/errors"
	"github.com/jbclements/t-test/ports"

	"golang.org/x/sync/errgroup"
)

// TTestService computes two-sample t-tests and records them as runs
type TTestService struct {
	repo     ports.RunRepository
	analysis config.AnalysisConfig
	logger   *internal.Logger
}

// TestRequest defines the inputs for one test
type TestRequest struct {
	Kind    stats.TestKind `json:"kind"`
	Label   string         `json:"label,omitempty"`
	Sample1 []float64      `json:"sample1"`
	Sample2 []float64      `json:"sample2"`
}

// BatchItem is the result of one request in a batch. Exactly one of Run and
// Error is set.
type BatchItem struct {
	Index int            `json:"index"`
	Run   *stats.TestRun `json:"run,omitempty"`
	Error string         `json:"error,omitempty"`
	Code  string         `json:"code,omitempty"`
}

// NewTTestService creates a t-test service
func NewTTestService(repo ports.RunRepository, analysis config.AnalysisConfig, logger *internal.Logger) *TTestService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if analysis.MaxConcurrency < 1 {
		analysis.MaxConcurrency = 1
	}
	return &TTestService{
		repo:     repo,
		analysis: analysis,
		logger:   logger.WithComponent("TTestService"),
	}
}

// Alpha is the significance level verdicts are drawn at
func (s *TTestService) Alpha() float64 {
	return s.analysis.Alpha
}

// Compute runs one test and persists the resulting run
func (s *TTestService) Compute(ctx context.Context, req TestRequest) (*stats.TestRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled("test request cancelled", err)
	}

	kind, err := stats.ParseTestKind(string(req.Kind))
	if err != nil {
		return nil, errors.FromDomain(err)
	}

	start := time.Now()
	outcome, err := ttest.Run(kind, req.Sample1, req.Sample2)
	if err != nil {
		s.logger.Debug("%s rejected (n1=%d, n2=%d): %v", kind, len(req.Sample1), len(req.Sample2), err)
		return nil, errors.FromDomain(err)
	}

	run := stats.NewTestRun(req.Label, outcome, s.analysis.Alpha)
	if err := s.repo.Save(ctx, run); err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to save run %s", run.ID), err)
	}

	s.logger.Info("%s run %s: t=%.6g df=%.6g p=%.6g (%s)",
		kind, run.ID, outcome.Statistic, outcome.DegreesOfFreedom, outcome.PValue, time.Since(start))
	return run, nil
}

// ComputeBatch runs every request concurrently, at most MaxConcurrency at a
// time. Per-request failures are reported in the matching BatchItem; the
// returned error is set only when the context ends the batch early.
func (s *TTestService) ComputeBatch(ctx context.Context, reqs []TestRequest) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.analysis.MaxConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			items[i].Index = i
			if err := gCtx.Err(); err != nil {
				return err
			}

			run, err := s.Compute(gCtx, req)
			if err != nil {
				items[i].Error = err.Error()
				items[i].Code = errors.GetCode(err)
				return nil
			}
			items[i].Run = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, errors.Cancelled("batch interrupted", err)
	}

	s.logger.Debug("batch of %d requests finished", len(reqs))
	return items, nil
}

// Get retrieves a stored run
func (s *TTestService) Get(ctx context.Context, id core.RunID) (*stats.TestRun, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.FromDomain(err)
		}
		return nil, errors.DatabaseError(fmt.Sprintf("failed to load run %s", id), err)
	}
	return run, nil
}

// List returns the most recent runs first
func (s *TTestService) List(ctx context.Context, limit int) ([]*stats.TestRun, error) {
	runs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list runs", err)
	}
	return runs, nil
}
