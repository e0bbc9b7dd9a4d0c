package model

import (
	roomModel "cohost/internal/domains/room/model"
)

// AssignTable picks a table for a party that asked to be seated without
// naming one. The ladder degrades best-effort: a full match first, then the
// window preference is dropped, then highchair, then capacity. The handicap
// requirement is never relaxed. Returns nil when no candidate is ready.
func AssignTable(party Party, candidates []roomModel.Table) *roomModel.Table {
	ready := make([]roomModel.Table, 0, len(candidates))

	for _, table := range candidates {
		if table.State == roomModel.TableStateReady {
			ready = append(ready, table)
		}
	}

	if len(ready) == 0 {
		return nil
	}

	matchers := []func(table roomModel.Table) bool{
		func(table roomModel.Table) bool {
			return fitsCapacity(party, table) && fitsHandicap(party, table) &&
				fitsHighchair(party, table) && fitsWindow(party, table)
		},
		func(table roomModel.Table) bool {
			return fitsCapacity(party, table) && fitsHandicap(party, table) && fitsHighchair(party, table)
		},
		func(table roomModel.Table) bool {
			return fitsCapacity(party, table) && fitsHandicap(party, table)
		},
	}

	for _, matches := range matchers {
		for i := range ready {
			if matches(ready[i]) {
				return &ready[i]
			}
		}
	}

	// Last resort: any ready table, even undersized.
	return &ready[0]
}

func fitsCapacity(party Party, table roomModel.Table) bool {
	return table.Capacity >= party.Size
}

func fitsHandicap(party Party, table roomModel.Table) bool {
	return !party.Handicap || table.Handicap
}

func fitsHighchair(party Party, table roomModel.Table) bool {
	return !party.Highchair || table.Highchair
}

func fitsWindow(party Party, table roomModel.Table) bool {
	return !party.Window || table.Window
}
