// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"context"
	"sync"
	"time"
)

// scheduler abstracts over how the policy and migration workers are
// driven; both implementations expose identical external observable
// behavior, only the scheduling mechanism differs.
type scheduler interface {
	Start(ctx context.Context)
	Stop()
}

const (
	policyTickInterval    = 10 * time.Millisecond
	migrationTickInterval = 100 * time.Millisecond
	asyncQueueDepth       = 64
)

// threadedScheduler runs the policy and migration workers as two
// goroutines with staggered tickers, mirroring a kernel module's two
// worker kthreads.
type threadedScheduler struct {
	engine *Engine
	wg     sync.WaitGroup
}

func newThreadedScheduler(e *Engine) *threadedScheduler {
	return &threadedScheduler{engine: e}
}

func (s *threadedScheduler) Start(ctx context.Context) {
	s.wg.Add(2)
	go s.runPolicy(ctx)
	go s.runMigration(ctx)
}

func (s *threadedScheduler) runPolicy(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(policyTickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.engine.drainAllRings()
		}
	}
}

func (s *threadedScheduler) runMigration(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(migrationTickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.engine.migrationTick()
		}
	}
}

func (s *threadedScheduler) Stop() {
	s.wg.Wait()
}

// workItem is the async scheduler's closed sum type, in place of a
// function-pointer-array dispatch table.
type workItem int

const (
	workPolicy workItem = iota
	workMigration
)

// asyncScheduler runs a single worker goroutine draining a work queue fed
// by the sample ingestion callback (policy items, via
// Engine.maybeEnqueuePolicy) and by the policy pass itself (the migration
// item, enqueued at the end of each drain), mirroring a kernel module's
// work-queue model.
type asyncScheduler struct {
	engine *Engine
	queue  chan workItem
	wg     sync.WaitGroup
}

func newAsyncScheduler(e *Engine) *asyncScheduler {
	return &asyncScheduler{
		engine: e,
		queue:  make(chan workItem, asyncQueueDepth),
	}
}

func (s *asyncScheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

func (s *asyncScheduler) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case item := <-s.queue:
			s.handle(item)
		}
	}
}

func (s *asyncScheduler) handle(item workItem) {
	switch item {
	case workPolicy:
		s.engine.drainAllRings()
		s.enqueueMigration()
	case workMigration:
		_ = s.engine.migrationTick()
	}
}

// drain runs any work items still queued at shutdown to completion,
// guaranteeing no pending work survives Stop.
func (s *asyncScheduler) drain() {
	for {
		select {
		case item := <-s.queue:
			s.handle(item)
		default:
			return
		}
	}
}

// enqueuePolicy is called from the sample ingestion path when the
// decimation counter fires. It never blocks: a full queue means a policy
// pass is already pending, so the sample is left for the next drain.
func (s *asyncScheduler) enqueuePolicy() {
	select {
	case s.queue <- workPolicy:
	default:
	}
}

func (s *asyncScheduler) enqueueMigration() {
	select {
	case s.queue <- workMigration:
	default:
	}
}

func (s *asyncScheduler) Stop() {
	s.wg.Wait()
}
