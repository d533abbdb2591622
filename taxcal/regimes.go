package taxcal

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	FY2024ID = "FY2024-25"
	FY2025ID = "FY2025-26"
)

// standardDeduction ค่าเริ่มต้นของทั้งสองปีภาษี
var standardDeduction = decimal.NewFromInt(75000)

// FY2024 is the new-regime slab table for FY 2024-25 (schedule A).
var FY2024 = SlabSchedule{
	ID:                FY2024ID,
	Label:             "FY 2024-25",
	StandardDeduction: standardDeduction,
	Brackets: []Bracket{
		upTo(300000, 0, 0),
		upTo(700000, 0, 5),
		upTo(1000000, 20000, 10),
		upTo(1200000, 50000, 15),
		upTo(1500000, 80000, 20),
		above(140000, 30),
	},
}

// FY2025 is the new-regime slab table for FY 2025-26 (schedule B).
var FY2025 = SlabSchedule{
	ID:                FY2025ID,
	Label:             "FY 2025-26",
	StandardDeduction: standardDeduction,
	Brackets: []Bracket{
		upTo(400000, 0, 0),
		upTo(800000, 0, 5),
		upTo(1200000, 20000, 10),
		upTo(1600000, 60000, 15),
		upTo(2000000, 120000, 20),
		upTo(2400000, 200000, 25),
		above(300000, 30),
	},
}

// Schedules returns the known schedules, oldest first.
func Schedules() []SlabSchedule {
	return []SlabSchedule{FY2024, FY2025}
}

// Lookup finds a schedule by its ID.
func Lookup(id string) (SlabSchedule, error) {
	s, ok := lo.Find(Schedules(), func(s SlabSchedule) bool {
		return s.ID == id
	})
	if !ok {
		return SlabSchedule{}, fmt.Errorf("unknown schedule %q", id)
	}
	return s, nil
}
