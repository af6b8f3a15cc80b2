// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kbimport

import (
	"context"
	"log"

	"golang.org/x/time/rate"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// Adder creates knowledge entries. *api.Client satisfies it.
type Adder interface {
	AddEntry(ctx context.Context, input model.EntryInput) (*model.KnowledgeEntry, error)
}

// Result is the outcome for one entry.
type Result struct {
	Index int
	Title string
	Entry *model.KnowledgeEntry
	Err   error
}

// Summary totals an import run.
type Summary struct {
	Added   int
	Failed  int
	Skipped int
}

// Importer posts entries one at a time.
type Importer struct {
	backend Adder
	limiter *rate.Limiter
}

// NewImporter creates an importer. perSecond <= 0 disables pacing.
func NewImporter(backend Adder, perSecond float64) *Importer {
	imp := &Importer{backend: backend}
	if perSecond > 0 {
		imp.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return imp
}

// Import adds entries in order and calls onResult after each one.
// Entries that fail validation are skipped without a request. The run
// stops when ctx is canceled and returns ctx.Err().
func (imp *Importer) Import(ctx context.Context, entries []model.EntryInput, onResult func(Result)) (Summary, error) {
	var sum Summary
	for i, in := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := Result{Index: i, Title: in.Title}
		if err := in.Validate(); err != nil {
			res.Err = err
			sum.Skipped++
			report(onResult, res)
			continue
		}

		if imp.limiter != nil {
			if err := imp.limiter.Wait(ctx); err != nil {
				return sum, err
			}
		}

		res.Entry, res.Err = imp.backend.AddEntry(ctx, in.Normalize())
		if res.Err != nil {
			log.Printf("IMPORT: %q failed: %v", in.Title, res.Err)
			sum.Failed++
		} else {
			sum.Added++
		}
		report(onResult, res)
	}
	return sum, nil
}

func report(fn func(Result), res Result) {
	if fn != nil {
		fn(res)
	}
}
