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

package catalog

import (
	"time"

	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/data"
	tz "github.com/dolthub/go-mongo-compiler/internal/time"
	"github.com/dolthub/go-mongo-compiler/typesys"
)

// literalParser builds a date-library function that parses a literal
// string argument into the named temporal kind. Per spec §6, these
// parsers only ever operate on literal strings; a non-literal argument
// simply fails to fold and is left typed as the declared codomain.
func literalParser(name string, codomain typesys.Type, parse func(string) (data.Value, error)) *Function {
	return &Function{
		Name:   name,
		Doc:    name + " parses an ISO-8601 literal string into a " + name + " atom.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Str},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst && args[0].ConstValue().Kind() == data.KindStr {
				v, err := parse(args[0].ConstValue().Str())
				if err != nil {
					return typesys.Type{}, err
				}
				return typesys.Const(v), nil
			}
			return codomain, nil
		},
	}
}

func init() {
	Default.Register(literalParser("Date", typesys.Date, data.ParseDate))
	Default.Register(literalParser("Time", typesys.Time, data.ParseTime))
	Default.Register(literalParser("Timestamp", typesys.Timestamp, data.ParseTimestamp))
	Default.Register(literalParser("Interval", typesys.Interval, data.ParseInterval))

	Default.Register(&Function{
		Name:   "TimeOfDay",
		Doc:    "TimeOfDay(timestamp) projects the time-of-day component of a Timestamp.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Timestamp},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				return typesys.Const(data.TimeOfDay(args[0].ConstValue().Temporal().T)), nil
			}
			return typesys.Time, nil
		},
	})

	Default.Register(&Function{
		Name:   "ToTimestamp",
		Doc:    "ToTimestamp(epoch_ms) builds a Timestamp from a millisecond Unix epoch Int.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Int},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				ms := args[0].ConstValue().Int().Int64()
				return typesys.Const(data.Timestamp(time.UnixMilli(ms))), nil
			}
			return typesys.Timestamp, nil
		},
	})

	Default.Register(&Function{
		Name:   "Extract",
		Doc:    "Extract(field, temporal) projects a named field (e.g. \"year\", \"hour\") out of a temporal atom as an Int.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Str, typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() != typesys.TagConst || args[0].ConstValue().Kind() != data.KindStr {
				return typesys.Type{}, typeErr(typesys.Str, args[0])
			}
			if args[1].Tag() == typesys.TagConst && args[1].ConstValue().IsTemporal() {
				n, err := extractField(args[0].ConstValue().Str(), args[1].ConstValue().Temporal().T)
				if err != nil {
					return typesys.Type{}, err
				}
				return typesys.Const(data.IntFromInt64(int64(n))), nil
			}
			return typesys.Int, nil
		},
	})

	Default.Register(&Function{
		Name:   "AtTimeZone",
		Doc:    "AtTimeZone(timestamp, zone) reinterprets a Timestamp's wall-clock reading in zone, where zone is an IANA name (\"America/Chicago\") or a fixed UTC offset (\"+01:00\").",
		Arity:  2,
		Domain: []typesys.Type{typesys.Timestamp, typesys.Str},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[1].Tag() != typesys.TagConst || args[1].ConstValue().Kind() != data.KindStr {
				return typesys.Timestamp, nil
			}
			if args[0].Tag() == typesys.TagConst {
				converted, err := tz.ConvertTimeToLocation(args[0].ConstValue().Temporal().T, args[1].ConstValue().Str())
				if err != nil {
					return typesys.Type{}, cerrors.Generic(err.Error())
				}
				return typesys.Const(data.Timestamp(converted)), nil
			}
			return typesys.Timestamp, nil
		},
	})
}

// extractField computes the named EXTRACT field of t; it backs Extract's
// constant folding for a literal field name over a literal temporal atom.
func extractField(field string, t time.Time) (int, error) {
	switch field {
	case "year":
		return t.Year(), nil
	case "month":
		return int(t.Month()), nil
	case "day":
		return t.Day(), nil
	case "hour":
		return t.Hour(), nil
	case "minute":
		return t.Minute(), nil
	case "second":
		return t.Second(), nil
	case "dayOfWeek":
		return int(t.Weekday()) + 1, nil
	case "dayOfYear":
		return t.YearDay(), nil
	default:
		return 0, cerrors.Generic("Extract: unknown field " + field)
	}
}
