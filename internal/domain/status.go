package domain

import "strings"

// Priority is the production urgency tier. The values are the German labels
// used throughout the planning UI.
type Priority string

const (
	PriorityHigh   Priority = "Hoch"
	PriorityMedium Priority = "Mittel"
	PriorityLow    Priority = "Tief"
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Rank returns the sort rank of a priority, most urgent first. Unknown
// priorities sort last.
func (p Priority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}

	return len(priorityRanks)
}

// ParsePriority returns the priority for a label (case-insensitive).
func ParsePriority(label string) (Priority, bool) {
	for p := range priorityRanks {
		if strings.EqualFold(string(p), label) {
			return p, true
		}
	}

	return "", false
}

// CoverageStatus classifies how long the current stock of a raw material
// lasts at the estimated consumption rate.
type CoverageStatus string

const (
	StatusRed    CoverageStatus = "red"
	StatusOrange CoverageStatus = "orange"
	StatusYellow CoverageStatus = "yellow"
	StatusGreen  CoverageStatus = "green"
)

var coverageSeverity = map[CoverageStatus]int{
	StatusRed:    0,
	StatusOrange: 1,
	StatusYellow: 2,
	StatusGreen:  3,
}

// Severity returns the sort rank of a status, most severe first. Unknown
// statuses sort last.
func (s CoverageStatus) Severity() int {
	if rank, ok := coverageSeverity[s]; ok {
		return rank
	}

	return len(coverageSeverity)
}

// TrendDirection describes whether consumption of a material is rising,
// falling, or flat.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)
