// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package viewmodel holds the screen state of each command. A view-model
// launches repository calls as independent jobs and publishes every state
// change to its observers; it only ever sees repository Results.
package viewmodel

import (
	"context"
	"sync"

	"travelgo/cli/internal/repository"
)

// State is what a screen renders: a loading flag, the last loaded data and the
// last failure.
type State[T any] struct {
	Loading bool
	Data    T
	// HasData is false until the first successful load.
	HasData bool
	Err     *repository.ErrorInfo
}

// Observer receives every state change. Observers run synchronously and must
// not launch jobs on the view-model that notifies them.
type Observer[T any] func(State[T])

// Job is one in-flight repository call.
type Job struct {
	done chan struct{}
}

// Wait blocks until the job has finished and its result has been published.
func (j *Job) Wait() { <-j.done }

// Done is closed when the job finishes.
func (j *Job) Done() <-chan struct{} { return j.done }

func finishedJob() *Job {
	j := &Job{done: make(chan struct{})}
	close(j.done)
	return j
}

// ViewModel runs jobs for one kind of data.
type ViewModel[T any] struct {
	emit sync.Mutex // serializes state changes with their notification

	mu        sync.Mutex
	state     State[T]
	observers map[int]Observer[T]
	nextObs   int
	jobs      map[*Job]context.CancelFunc
	disposed  bool
}

// New returns an idle view-model.
func New[T any]() *ViewModel[T] {
	return &ViewModel[T]{
		observers: make(map[int]Observer[T]),
		jobs:      make(map[*Job]context.CancelFunc),
	}
}

// State returns the current state.
func (vm *ViewModel[T]) State() State[T] {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Observe registers fn and returns a function that unregisters it.
func (vm *ViewModel[T]) Observe(fn Observer[T]) (stop func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.nextObs
	vm.nextObs++
	vm.observers[id] = fn
	return func() {
		vm.mu.Lock()
		delete(vm.observers, id)
		vm.mu.Unlock()
	}
}

// Launch runs fn in its own goroutine with a context derived from ctx that
// Dispose cancels. The state turns Loading at once and receives fn's Result
// when it returns. Results of jobs canceled by Dispose are discarded.
func (vm *ViewModel[T]) Launch(ctx context.Context, fn func(context.Context) repository.Result[T]) *Job {
	return vm.LaunchIf(ctx, nil, fn)
}

// LaunchIf is Launch guarded by allow, which sees the current state and is
// evaluated atomically with the job's registration. When allow rejects the
// state nothing runs and the returned job is already finished.
func (vm *ViewModel[T]) LaunchIf(ctx context.Context, allow func(State[T]) bool, fn func(context.Context) repository.Result[T]) *Job {
	vm.emit.Lock()
	vm.mu.Lock()
	if vm.disposed || (allow != nil && !allow(vm.state)) {
		vm.mu.Unlock()
		vm.emit.Unlock()
		return finishedJob()
	}
	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{done: make(chan struct{})}
	vm.jobs[job] = cancel
	vm.state.Loading = true
	vm.state.Err = nil
	snapshot, observers := vm.state, vm.observerList()
	vm.mu.Unlock()
	notify(observers, snapshot)
	vm.emit.Unlock()

	go func() {
		defer close(job.done)
		defer cancel()
		res := fn(jobCtx)
		vm.finish(job, res)
	}()
	return job
}

func (vm *ViewModel[T]) finish(job *Job, res repository.Result[T]) {
	vm.emit.Lock()
	defer vm.emit.Unlock()

	vm.mu.Lock()
	if _, ok := vm.jobs[job]; !ok {
		// Dispose already dropped this job.
		vm.mu.Unlock()
		return
	}
	delete(vm.jobs, job)
	vm.state.Loading = len(vm.jobs) > 0
	if v, ok := res.Value(); ok {
		vm.state.Data, vm.state.HasData, vm.state.Err = v, true, nil
	} else {
		vm.state.Err = res.Failure()
	}
	snapshot, observers := vm.state, vm.observerList()
	vm.mu.Unlock()

	notify(observers, snapshot)
}

// Reset returns to the zero state. In-flight jobs keep running.
func (vm *ViewModel[T]) Reset() {
	vm.update(func(s *State[T]) {
		loading := s.Loading
		*s = State[T]{Loading: loading}
	})
}

// Dispose cancels every in-flight job and drops all observers. Later Launch
// calls return an already finished job.
func (vm *ViewModel[T]) Dispose() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.disposed = true
	for job, cancel := range vm.jobs {
		cancel()
		delete(vm.jobs, job)
	}
	vm.state.Loading = false
	clear(vm.observers)
}

func (vm *ViewModel[T]) update(fn func(*State[T])) {
	vm.emit.Lock()
	defer vm.emit.Unlock()

	vm.mu.Lock()
	fn(&vm.state)
	snapshot, observers := vm.state, vm.observerList()
	vm.mu.Unlock()

	notify(observers, snapshot)
}

func (vm *ViewModel[T]) observerList() []Observer[T] {
	out := make([]Observer[T], 0, len(vm.observers))
	for i := 0; i < vm.nextObs; i++ {
		if fn, ok := vm.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify[T any](observers []Observer[T], s State[T]) {
	for _, fn := range observers {
		fn(s)
	}
}
