package usecase

import (
	"time"

	"main/model"
	"main/repository"
)

// Named relative ranges for the past-entries view.
const (
	PresetAll    = "all"
	PresetWeek   = "week"
	PresetMonth  = "month"
	PresetYear   = "year"
	PresetCustom = "custom"
)

func presetWindowDays(preset string) (int, bool) {
	switch preset {
	case PresetWeek:
		return 7, true
	case PresetMonth:
		return 31, true
	case PresetYear:
		return 365, true
	default:
		return 0, false
	}
}

// FilterByRange keeps the entries matching the preset window and the
// explicit start/end bounds, all combined conjunctively. Bounds are
// inclusive; unparseable bounds are ignored rather than rejected. Entries
// whose own timestamp cannot be parsed stay visible when no window or
// bound applies, and are dropped once any time constraint is in effect.
// Result is newest first.
func FilterByRange(entries []model.Entry, preset, start, end string, now time.Time) []model.Entry {
	days, hasWindow := presetWindowDays(preset)

	var startBound, endBound *time.Time
	if start != "" {
		if ts, err := model.ParseEntryTime(start); err == nil {
			startBound = &ts
		}
	}
	if end != "" {
		if ts, err := model.ParseEntryTime(end); err == nil {
			endBound = &ts
		}
	}

	unconstrained := !hasWindow && startBound == nil && endBound == nil

	matched := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		ts, err := e.CreatedTime()
		if err != nil {
			if unconstrained {
				matched = append(matched, e)
			}
			continue
		}
		if hasWindow && int(now.Sub(ts).Hours()/24) >= days {
			continue
		}
		if startBound != nil && ts.Before(*startBound) {
			continue
		}
		if endBound != nil && ts.After(*endBound) {
			continue
		}
		matched = append(matched, e)
	}

	repository.SortEntriesDesc(matched)
	return matched
}

// Decorate fills the derived display_time on each entry. An unparseable
// created_at shows its raw stored value instead of breaking the page.
func Decorate(entries []model.Entry) []model.Entry {
	for i := range entries {
		ts, err := entries[i].CreatedTime()
		if err != nil {
			entries[i].DisplayTime = entries[i].CreatedAt
			continue
		}
		entries[i].DisplayTime = ts.Format(model.DisplayTimeLayout)
	}
	return entries
}
