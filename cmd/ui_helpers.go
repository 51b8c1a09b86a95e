// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	apperr "travelgo/cli/internal/errors"
	"travelgo/cli/internal/httperrors"
	"travelgo/cli/internal/repository"
	"travelgo/cli/internal/terminal"
	"travelgo/cli/internal/viewmodel"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// interactive is swapped in tests.
var interactive = terminal.IsInteractive

// reportedError marks a failure whose explanation was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// startLoading shows text with a spinner until the returned function is called.
// Without a terminal it prints text once to stderr.
func startLoading(text string) func() {
	if !interactive() {
		fmt.Fprintf(os.Stderr, "%s...\n", text)
		return func() {}
	}

	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		area.Update(fmt.Sprintf("%s %s", spinnerFrames[i], text))
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			case <-stop:
				return
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		_ = area.Stop()
		cursor.Show()
	}
}

// confirmRetry asks whether to repeat a failed request. Swapped in tests.
var confirmRetry = func(action string) bool {
	if !interactive() {
		return false
	}
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(fmt.Sprintf("Retry %s?", action)).
		WithDefaultValue(true).
		Show()
	return err == nil && ok
}

// retryable reports whether repeating the same request could change the outcome.
func retryable(info *repository.ErrorInfo) bool {
	switch info.Kind {
	case apperr.Unauthenticated, apperr.DeserializationFailure:
		return false
	case apperr.HTTPFailure:
		return info.StatusCode >= 500 || info.StatusCode == 408 || info.StatusCode == 429
	}
	return true
}

// runScreen launches a job, shows the loading indicator while it runs and, on
// failure, explains it and offers a retry. The view-model is disposed on return.
func runScreen[T any](ctx context.Context, vm *viewmodel.ViewModel[T], action string, launch func(context.Context) *viewmodel.Job) (T, error) {
	defer vm.Dispose()
	for {
		stop := startLoading(capitalize(action))
		launch(ctx).Wait()
		stop()

		st := vm.State()
		if st.Err == nil {
			return st.Data, nil
		}
		httperrors.Describe(action, st.Err).Print()
		if ctx.Err() != nil || !retryable(st.Err) || !confirmRetry(action) {
			var zero T
			return zero, &reportedError{err: fmt.Errorf("%s: %w", action, st.Err)}
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

func notLoggedIn() {
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'travelgo login' to get started.")
}
