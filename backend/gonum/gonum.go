// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gonum provides the tensornet backend built on gonum.
package gonum

import (
	"log/slog"
	"math/rand/v2"

	internalgonum "github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/parallel"
	"github.com/born-ml/tensornet/tensor"
)

// Name is the registered name of the backend.
const Name = internalgonum.Name

// Backend binds tensor.Backend to gonum's BLAS and LAPACK routines.
type Backend = internalgonum.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalgonum.Option

// WithLogger routes the backend's diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return internalgonum.WithLogger(logger.New(l.Handler()))
}

// WithWorkers splits element-wise and batched kernels across up to workers
// goroutines, each handed at least minChunk elements. workers <= 1 runs
// everything on the calling goroutine.
func WithWorkers(workers, minChunk int) Option {
	return internalgonum.WithParallel(parallel.Config{Workers: workers, MinChunk: minChunk})
}

// WithProbe replaces the startup self-check. A probe returning an error makes
// New fail with tensor.ErrLibraryUnavailable.
func WithProbe(probe func() error) Option {
	return internalgonum.WithProbe(probe)
}

// Info describes the host the backend runs on.
type Info = internalgonum.Info

// New creates a gonum backend. It fails with tensor.ErrLibraryUnavailable
// when gonum's routines do not pass a startup self-check.
//
// Example:
//
//	b, err := gonum.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	x, _ := b.Randn(tensor.Shape{2, 3}, tensor.Float64, gonum.NewSource(1))
func New(opts ...Option) (*Backend, error) {
	return internalgonum.New(opts...)
}

// NewSource returns a seeded random source for Randn and RandomUniform.
func NewSource(seed uint64) rand.Source {
	return internalgonum.NewSource(seed)
}
