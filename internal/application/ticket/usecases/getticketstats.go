package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/ChaleeCh/support-tickets/internal/domain/ticket"
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/errors"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

// Illustrative response-time metrics shown beside the computed counts.
// They are fixed display values, not derived from the table.
const (
	firstResponseHours = 5.2
	avgResolutionHours = 16
)

type GetTicketStatsQuery struct {
	Role string
}

// MonthStatusCount is one bar of the status-per-month chart.
type MonthStatusCount struct {
	Month  string `json:"month"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type GetTicketStatsResult struct {
	TotalTickets       int
	OpenTickets        int
	FirstResponseHours float64
	AvgResolutionHours float64
	ByStatus           map[string]int
	ByPriority         map[string]int
	StatusByMonth      []MonthStatusCount
}

type GetTicketStatsUseCase struct {
	repo   ticket.Repository
	logger logger.Interface
}

func NewGetTicketStatsUseCase(repo ticket.Repository, log logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	uc.logger.Debugw("executing get ticket stats use case", "role", query.Role)

	if _, err := vo.NewRole(query.Role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	snapshot := uc.repo.Snapshot()

	result := &GetTicketStatsResult{
		TotalTickets:       len(snapshot),
		FirstResponseHours: firstResponseHours,
		AvgResolutionHours: avgResolutionHours,
		ByStatus:           make(map[string]int),
		ByPriority:         make(map[string]int),
	}

	for _, status := range vo.AllStatuses() {
		result.ByStatus[status.String()] = 0
	}

	type monthStatus struct {
		month  time.Month
		status string
	}
	monthCounts := make(map[monthStatus]int)

	for _, r := range snapshot {
		result.ByStatus[r.Status()]++
		if r.Status() == vo.StatusOpen.String() {
			result.OpenTickets++
		}
		if r.Priority() != "" {
			result.ByPriority[r.Priority()]++
		}

		if month, ok := submittedMonth(r.DateSubmitted()); ok {
			monthCounts[monthStatus{month: month, status: r.Status()}]++
		}
	}

	for key, count := range monthCounts {
		result.StatusByMonth = append(result.StatusByMonth, MonthStatusCount{
			Month:  key.month.String()[:3],
			Status: key.status,
			Count:  count,
		})
	}
	sort.Slice(result.StatusByMonth, func(i, j int) bool {
		mi := monthIndex(result.StatusByMonth[i].Month)
		mj := monthIndex(result.StatusByMonth[j].Month)
		if mi != mj {
			return mi < mj
		}
		return result.StatusByMonth[i].Status < result.StatusByMonth[j].Status
	})

	return result, nil
}

// submittedMonth parses the Date Submitted cell, which carries either the
// manual submission stamp or the seeded calendar date.
func submittedMonth(date string) (time.Month, bool) {
	for _, layout := range []string{ticket.SubmitDateFormat, ticket.SeedDateFormat} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

func monthIndex(short string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String()[:3] == short {
			return int(m)
		}
	}
	return 13
}
