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

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dolthub/go-mongo-compiler/cerrors"
)

// ParseDate parses a YYYY-MM-DD string into a Date atom.
func ParseDate(s string) (Value, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Value{}, cerrors.DateFormatError("Date", s, "expected YYYY-MM-DD")
	}
	return Date(t), nil
}

// ParseTime parses an HH:MM:SS[.sss] string into a Time atom.
func ParseTime(s string) (Value, error) {
	for _, layout := range []string{"15:04:05.999999999", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t), nil
		}
	}
	return Value{}, cerrors.DateFormatError("Time", s, "expected HH:MM:SS[.sss]")
}

// ParseTimestamp parses a UTC instant, e.g. "2015-05-12T12:22:00Z".
func ParseTimestamp(s string) (Value, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Value{}, cerrors.DateFormatError("Timestamp", s, "expected RFC3339 UTC, e.g. 2015-05-12T12:22:00Z")
	}
	return Timestamp(t), nil
}

// intervalPattern matches the subset of ISO-8601 durations this module
// supports: day/hour/minute/second fields only. Year and month fields are
// rejected, per spec, because they are not a fixed duration.
var intervalPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// yearMonthPattern detects the unsupported Y/M-before-T fields so the
// error message can call them out explicitly.
var yearMonthPattern = regexp.MustCompile(`^P(\d+Y)?(\d+M)?`)

// ParseInterval parses an ISO-8601 duration such as "P3DT12H30M15.0S".
// Year and month fields are unsupported and yield a DateFormatError, since
// they do not denote a fixed-length duration.
func ParseInterval(s string) (Value, error) {
	if m := yearMonthPattern.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		return Value{}, cerrors.DateFormatError("Interval", s, "year/month fields are unsupported")
	}
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return Value{}, cerrors.DateFormatError("Interval", s, "expected P[n]DT[n]H[n]M[n]S")
	}
	var d time.Duration
	if m[1] != "" {
		days, _ := strconv.Atoi(m[1])
		d += time.Duration(days) * 24 * time.Hour
	}
	if m[2] != "" {
		hours, _ := strconv.Atoi(m[2])
		d += time.Duration(hours) * time.Hour
	}
	if m[3] != "" {
		mins, _ := strconv.Atoi(m[3])
		d += time.Duration(mins) * time.Minute
	}
	if m[4] != "" {
		secs, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return Value{}, cerrors.DateFormatError("Interval", s, "invalid seconds field")
		}
		d += time.Duration(secs * float64(time.Second))
	}
	return Interval(d), nil
}

// String renders a Value for debug trees and error messages. It is not a
// wire format.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return v.i.String()
	case KindDec:
		return v.d.String()
	case KindStr:
		return strconv.Quote(v.s)
	case KindTimestamp:
		return v.t.T.Format(time.RFC3339Nano)
	case KindDate:
		return v.t.T.Format("2006-01-02")
	case KindTime:
		return v.t.T.Format("15:04:05.999999999")
	case KindInterval:
		return v.t.Dur.String()
	case KindArr:
		return fmt.Sprintf("%v", v.a)
	case KindObj:
		return fmt.Sprintf("%v", v.o.keys)
	case KindSet:
		return fmt.Sprintf("%v", v.set)
	default:
		return "<invalid>"
	}
}
