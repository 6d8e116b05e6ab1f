package model

import (
	"fmt"
	"time"
)

type DeadlineKind int

const (
	// DeadlineNone: the activity has no due date at all.
	DeadlineNone DeadlineKind = iota
	DeadlineOverdue
	DeadlineToday
	DeadlineSoon
	DeadlineOnTrack
)

// Deadline is the classification of an activity's due date relative to "now".
type Deadline struct {
	Kind DeadlineKind
	// DaysLeft is the whole-day distance to the due date: negative when
	// overdue, zero when due today. Zero (and meaningless) for DeadlineNone.
	DaysLeft int
}

// ClassifyDeadline is a pure function of (now, due). Day distance is the
// ceiling of (due - now) in whole days, matching how the tracker has always
// bucketed deadlines: any positive remainder rounds up, so a due time later
// the same day already counts as one day out ("soon"); "today" means the due
// time has passed but less than a day ago. 1-3 days out is "soon", beyond
// that is on track.
func ClassifyDeadline(now time.Time, due *time.Time) Deadline {
	if due == nil {
		return Deadline{Kind: DeadlineNone}
	}
	diff := due.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	switch {
	case days < 0:
		return Deadline{Kind: DeadlineOverdue, DaysLeft: days}
	case days == 0:
		return Deadline{Kind: DeadlineToday}
	case days <= 3:
		return Deadline{Kind: DeadlineSoon, DaysLeft: days}
	default:
		return Deadline{Kind: DeadlineOnTrack, DaysLeft: days}
	}
}

// Label renders the deadline the way the list shows it.
func (d Deadline) Label() string {
	switch d.Kind {
	case DeadlineNone:
		return "sin vencimiento"
	case DeadlineOverdue:
		return fmt.Sprintf("vencido hace %d día(s)", -d.DaysLeft)
	case DeadlineToday:
		return "vence hoy"
	default:
		return fmt.Sprintf("vence en %d día(s)", d.DaysLeft)
	}
}
