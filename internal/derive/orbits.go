package derive

import (
	"time"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// Orbit is one of the three activity-based proximity tiers.
type Orbit string

const (
	OrbitInner  Orbit = "inner"
	OrbitMiddle Orbit = "middle"
	OrbitOuter  Orbit = "outer"
)

// ActivityCounts holds the per-friend event counts the bucketing rule uses.
type ActivityCounts struct {
	C90   int
	C365  int
	Total int
}

// OrbitBuckets partitions every friend id into exactly one tier, in the
// friend collection's insertion order.
type OrbitBuckets struct {
	Inner  []string
	Middle []string
	Outer  []string
}

// CountActivity tallies a friend's events inside the trailing 90/365-day
// windows plus all time. Events with unparseable dates count toward Total
// only.
func CountActivity(st store.State, friendID string, now time.Time) ActivityCounts {
	var c ActivityCounts
	f := st.Friend(friendID)
	if f == nil {
		return c
	}
	for _, evID := range f.EventIDs {
		ev, ok := st.Events[evID]
		if !ok {
			continue
		}
		c.Total++
		d, err := timeutil.ParseYMD(ev.Date)
		if err != nil {
			continue
		}
		if timeutil.WithinTrailingDays(d, now, config.WindowShortDays) {
			c.C90++
		}
		if timeutil.WithinTrailingDays(d, now, config.WindowLongDays) {
			c.C365++
		}
	}
	return c
}

// OrbitFor applies the OR-of-thresholds rule to activity counts.
func OrbitFor(c ActivityCounts) Orbit {
	switch {
	case c.C90 >= config.OrbitInnerC90 || c.C365 >= config.OrbitInnerC365 || c.Total >= config.OrbitInnerTotal:
		return OrbitInner
	case c.C90 >= config.OrbitMiddleC90:
		return OrbitMiddle
	default:
		return OrbitOuter
	}
}

// ComputeOrbits buckets every friend relative to now.
func ComputeOrbits(st store.State, now time.Time) OrbitBuckets {
	var b OrbitBuckets
	for _, f := range st.Friends {
		switch OrbitFor(CountActivity(st, f.ID, now)) {
		case OrbitInner:
			b.Inner = append(b.Inner, f.ID)
		case OrbitMiddle:
			b.Middle = append(b.Middle, f.ID)
		default:
			b.Outer = append(b.Outer, f.ID)
		}
	}
	return b
}
