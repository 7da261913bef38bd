package model

import (
	"fmt"
	"math"
	"strconv"
)

// Tone is the semantic colour of a summary card value
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
)

// SummaryCard is one of the four cards at the top of the overview
type SummaryCard struct {
	Key     string
	Title   string
	Value   string
	Caption string
	Tone    Tone
	Icon    string
}

// Overview is the computed content of the overview section
type Overview struct {
	Cards        []SummaryCard
	Cases        []MonthlyCase
	CurrentCases int
	Change       float64
}

// MonthlyChange returns the month-over-month change in percent rounded to one decimal.
// A missing month or a previous count of zero yields 0.
func MonthlyChange(current, previous *MonthlyCase) float64 {
	if current == nil || previous == nil || previous.Cases == 0 {
		return 0
	}
	change := float64(current.Cases-previous.Cases) / float64(previous.Cases) * 100
	return math.Round(change*10) / 10
}

// ChangeTone colours increases as danger and everything else as success
func ChangeTone(change float64) Tone {
	if change > 0 {
		return ToneDanger
	}
	return ToneSuccess
}

// FormatPercent formats a change like "-19.9%" without trailing zeros
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// BuildOverview computes the summary cards of the dataset
func BuildOverview(d *Dataset) *Overview {
	current, _ := d.FindCase(d.CurrentMonth)
	previous, _ := d.FindCase(d.PreviousMonth)

	currentCases := 0
	if current != nil {
		currentCases = current.Cases
	}
	change := MonthlyChange(current, previous)

	cases := make([]MonthlyCase, len(d.Cases))
	copy(cases, d.Cases)

	return &Overview{
		Cards: []SummaryCard{
			{
				Key:     "risk",
				Title:   "Current Risk Level",
				Value:   d.Outlook.RiskLevel,
				Caption: fmt.Sprintf("%s %d", d.CurrentMonth, d.Year),
				Tone:    ToneDanger,
				Icon:    "alert-triangle",
			},
			{
				Key:     "cases",
				Title:   "Current Cases",
				Value:   strconv.Itoa(currentCases),
				Caption: fmt.Sprintf("Total for %s", d.CurrentMonth),
				Tone:    ToneInfo,
				Icon:    "activity",
			},
			{
				Key:     "change",
				Title:   "Monthly Change",
				Value:   FormatPercent(change),
				Caption: fmt.Sprintf("vs %s", d.PreviousMonth),
				Tone:    ChangeTone(change),
				Icon:    "activity",
			},
			{
				Key:     "season",
				Title:   "Season Status",
				Value:   d.Outlook.SeasonStatus,
				Caption: "Current season",
				Tone:    ToneNeutral,
				Icon:    "droplets",
			},
		},
		Cases:        cases,
		CurrentCases: currentCases,
		Change:       change,
	}
}
