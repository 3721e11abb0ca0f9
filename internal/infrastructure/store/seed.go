package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
)

// seedSize and seedMaxSuffix reproduce the reference dataset: 100 rows
// with IDs TICKET-1100 down to TICKET-1001.
const (
	seedSize      = 100
	seedMaxSuffix = 1100
	seedRandSeed  = 42
)

var seedIssues = []string{
	"Network connectivity issues in the office",
	"Software application crashing on startup",
	"Printer not responding to print commands",
	"Email server downtime",
	"Data backup failure",
	"Login authentication problems",
	"Website performance degradation",
	"Security vulnerability identified",
	"Hardware malfunction in the server room",
	"Employee unable to access shared files",
	"Database connection failure",
	"Mobile application not syncing data",
	"VoIP phone system issues",
	"VPN connection problems for remote employees",
	"System updates causing compatibility issues",
	"File server running out of storage space",
	"Intrusion detection system alerts",
	"Inventory management system errors",
	"Customer data not loading in CRM",
	"Collaboration tool not sending notifications",
}

var seedStatuses = []vo.Status{vo.StatusOpen, vo.StatusInProgress, vo.StatusClosed}

var seedPriorities = []vo.Priority{vo.PriorityHigh, vo.PriorityMedium, vo.PriorityLow}

// SeedRecords builds the deterministic synthetic table loaded at startup:
// descending IDs from TICKET-1100, canned issue descriptions, statuses and
// priorities drawn with a fixed seed, submission dates spread over the
// second half of 2023, and an empty CM column on every row.
func SeedRecords() ([]*ticket.Record, error) {
	rng := rand.New(rand.NewSource(seedRandSeed))
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	records := make([]*ticket.Record, 0, seedSize)
	for i := 0; i < seedSize; i++ {
		id := ticket.FormatID(seedMaxSuffix - i)
		date := start.AddDate(0, 0, rng.Intn(183)).Format(ticket.SeedDateFormat)

		r, err := ticket.ReconstructRecord(
			id,
			seedIssues[rng.Intn(len(seedIssues))],
			seedStatuses[rng.Intn(len(seedStatuses))].String(),
			seedPriorities[rng.Intn(len(seedPriorities))].String(),
			date,
			map[string]string{ticket.ColumnCM: ""},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build seed record %s: %w", id, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Preload seeds an empty store with the synthetic table.
func Preload(repo ticket.Repository) error {
	if repo.Count() > 0 {
		return fmt.Errorf("refusing to seed a non-empty table")
	}
	records, err := SeedRecords()
	if err != nil {
		return err
	}
	return repo.Insert(records)
}
