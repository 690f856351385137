/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"time"

	"github.com/saisaranya2005/SmartLabAI/db"
	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/logging"
	"github.com/saisaranya2005/SmartLabAI/narrative"
)

var logger = logging.Logger(logging.SourceWeb)

// App holds the collaborators the handlers need. Stores are keyed by panel;
// a panel without a store behaves as if the database were unreachable.
type App struct {
	Stores    map[lab.Panel]db.VisitStore
	Narrative narrative.Generator
	Now       func() time.Time
}

// NewApp returns an App using the wall clock.
func NewApp(stores map[lab.Panel]db.VisitStore, gen narrative.Generator) *App {
	return &App{
		Stores:    stores,
		Narrative: gen,
		Now:       time.Now,
	}
}

func (a *App) store(panel lab.Panel) db.VisitStore {
	if s, ok := a.Stores[panel]; ok && s != nil {
		return s
	}

	return db.Unavailable()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}

	return a.Now()
}
