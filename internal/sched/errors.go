package sched

import "errors"

var (
	// ErrInvalidPriority is returned by Add for a priority outside [MinPriority, MaxPriority].
	ErrInvalidPriority = errors.New("priority out of range")

	// ErrNonPositiveBurst is returned by Add for a burst of zero or less.
	ErrNonPositiveBurst = errors.New("burst must be positive")

	// ErrEmptyBatch is returned when there is nothing to schedule or report on.
	ErrEmptyBatch = errors.New("no tasks to schedule")

	// ErrUnknownPolicy is returned for a policy name that is not fcfs, rr or priority_rr.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")

	// ErrInvalidQuantum is returned for a round-robin quantum of zero or less.
	ErrInvalidQuantum = errors.New("quantum must be positive")
)
