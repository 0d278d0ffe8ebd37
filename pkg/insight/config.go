package insight

// Thresholds holds every tunable constant used by the engine.
// Caps that bound returned lists are part of the contract: counts used for
// severity always cover the full filtered set, caps only trim previews.
type Thresholds struct {
	// Contact badges
	HotContactMaxDays  int     // hot if last contact within this many days
	ColdContactMinDays int     // cold if last contact strictly older than this
	HighValueAmount    float64 // high-value if any deal exceeds this amount

	// Deal health
	FreshUpdateMaxDays int // update newer than this earns the recency bonus
	StaleUpdateMinDays int // update strictly older than this is penalized
	DeadUpdateMinDays  int // update strictly older than this is penalized hard
	CloseWindowDays    int // expected close within [0,n] days earns a bonus

	// Alerts
	BlockedDealMinDays     int // open deal untouched for this many days
	SLAResponseDays        int // planned activity unactioned for this many days
	CriticalBlockedDeals   int // blocked-deal count that escalates to critical
	CriticalSLABreaches    int // SLA-breach count that escalates to critical
	WarningOverdueContacts int // overdue-contact count that raises a warning
	AlertPreviewCap        int // items shown per category

	// Smart actions
	ColdContactActionMinDays int // contact untouched for this many days
	StagnantDealMinDays      int // open deal untouched for this many days
	StagnantDealHighCount    int // stagnant count that raises priority to high
	MaxActions               int // action cards returned, detection order

	// Pipeline health
	StalledDealMinDays   int     // open deal untouched for this many days
	MomentumWindowDays   int     // "recent activity" window
	StageDistributionTop int     // stage slices returned
	DefaultVelocityDays  float64 // velocity fallback when no deal has closed
}

// DefaultThresholds returns the standard engine tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HotContactMaxDays:  2,
		ColdContactMinDays: 14,
		HighValueAmount:    300000,

		FreshUpdateMaxDays: 3,
		StaleUpdateMinDays: 7,
		DeadUpdateMinDays:  14,
		CloseWindowDays:    14,

		BlockedDealMinDays:     15,
		SLAResponseDays:        7,
		CriticalBlockedDeals:   3,
		CriticalSLABreaches:    5,
		WarningOverdueContacts: 5,
		AlertPreviewCap:        3,

		ColdContactActionMinDays: 10,
		StagnantDealMinDays:      7,
		StagnantDealHighCount:    3,
		MaxActions:               4,

		StalledDealMinDays:   14,
		MomentumWindowDays:   7,
		StageDistributionTop: 5,
		DefaultVelocityDays:  45,
	}
}
