// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import "time"

// TemporalKind distinguishes the four temporal atoms.
type TemporalKind uint8

const (
	TemporalTimestamp TemporalKind = iota
	TemporalDate
	TemporalTime
	TemporalInterval
)

// Temporal is the shared payload for Timestamp, Date, Time and Interval.
// Timestamp/Date/Time store an instant or local value in t; Interval
// stores a duration in dur and leaves t zero.
type Temporal struct {
	Kind TemporalKind
	T    time.Time
	Dur  time.Duration
}

// Equal compares two Temporal payloads of (presumed) equal kind.
func (t Temporal) Equal(other Temporal) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == TemporalInterval {
		return t.Dur == other.Dur
	}
	return t.T.Equal(other.T)
}

// Timestamp wraps a UTC instant.
func Timestamp(t time.Time) Value {
	return Value{kind: KindTimestamp, t: Temporal{Kind: TemporalTimestamp, T: t.UTC()}}
}

// Date wraps a local calendar date (time-of-day and location are ignored).
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: Temporal{Kind: TemporalDate, T: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}}
}

// TimeOfDay wraps a local time-of-day value (the date component is ignored).
func TimeOfDay(t time.Time) Value {
	h, m, s := t.Clock()
	ns := t.Nanosecond()
	return Value{kind: KindTime, t: Temporal{Kind: TemporalTime, T: time.Date(0, 1, 1, h, m, s, ns, time.UTC)}}
}

// Interval wraps a duration.
func Interval(d time.Duration) Value {
	return Value{kind: KindInterval, t: Temporal{Kind: TemporalInterval, Dur: d}}
}
