/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

const (
	patientIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	patientIDSuffix   = 4
	patientIDAttempts = 16
)

// PatientIdentity is the demographic part of a patient id.
type PatientIdentity struct {
	Name   string
	Age    int
	Gender string
}

func (p PatientIdentity) complete() bool {
	_, err := lab.ParseGender(p.Gender)
	return strings.TrimSpace(p.Name) != "" && p.Age > 0 && err == nil
}

// stem returns everything except the random suffix, e.g.
// "CBC-20250301-JOHN45M" or "CBC-20250301-" without identity.
func (p PatientIdentity) stem(panel lab.Panel, date time.Time) string {
	prefix := fmt.Sprintf("%s-%s-", panel, date.Format("20060102"))
	if !p.complete() {
		return prefix
	}

	name := strings.ToUpper(strings.ReplaceAll(p.Name, " ", ""))
	if runes := []rune(name); len(runes) > 4 {
		name = string(runes[:4])
	}

	gender, _ := lab.ParseGender(p.Gender)

	return prefix + name + strconv.Itoa(p.Age) + gender.Initial()
}

func randomSuffix() string {
	var sb strings.Builder
	for range patientIDSuffix {
		sb.WriteByte(patientIDAlphabet[rand.IntN(len(patientIDAlphabet))])
	}

	return sb.String()
}

// NewPatientID generates an id that the store does not know yet. Candidates
// keep the same format and only the random suffix changes between attempts.
// When the store is unavailable uniqueness cannot be checked and the first
// candidate is returned.
func NewPatientID(ctx context.Context, store VisitStore, panel lab.Panel, identity PatientIdentity, now time.Time) (string, error) {
	stem := identity.stem(panel, now)

	if store == nil || !store.Available() {
		return stem + randomSuffix(), nil
	}

	for range patientIDAttempts {
		candidate := stem + randomSuffix()

		exists, err := store.PatientExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check patient id: %w", err)
		}

		if !exists {
			return candidate, nil
		}

		logger.Debug("Patient id collision, retrying", "id", candidate)
	}

	return "", ErrPatientIDExhausted
}
