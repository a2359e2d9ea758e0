package models

// RosterDay is a decided day with staff names resolved
type RosterDay struct {
	Day       string   `json:"day"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
}

// RosterWeek is a decided week with staff names resolved
type RosterWeek struct {
	Week          int         `json:"week"`
	TemplateIndex int         `json:"template_index"`
	Delta         int         `json:"delta"`
	Days          []RosterDay `json:"days"`
}

// RosterResponse is the data structure for the roster endpoints
type RosterResponse struct {
	WeekStart     int          `json:"week_start"`
	WeekCount     int          `json:"week_count"`
	CycleLength   int          `json:"cycle_length"`
	Weeks         []RosterWeek `json:"weeks"`
	FairnessScore float64      `json:"fairness_score"`
}

// ResolveWeek turns a decided week into names from this registry
func (r *StaffRegistry) ResolveWeek(w DecidedWeek) (RosterWeek, error) {
	out := RosterWeek{
		Week:          w.Week,
		TemplateIndex: w.TemplateIndex,
		Delta:         w.Delta,
		Days:          make([]RosterDay, 0, DaysPerWeek),
	}
	for _, d := range w.Days {
		morning, err := r.Names(d.Morning)
		if err != nil {
			return RosterWeek{}, err
		}
		afternoon, err := r.Names(d.Afternoon)
		if err != nil {
			return RosterWeek{}, err
		}
		out.Days = append(out.Days, RosterDay{Day: d.Weekday.String(), Morning: morning, Afternoon: afternoon})
	}
	return out, nil
}
