// Copyright 2023 Dolthub, Inc.
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

package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConvertTimeToLocationIANAName(t *testing.T) {
	datetime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	converted, err := ConvertTimeToLocation(datetime, "America/Chicago")
	require.NoError(t, err)
	require.Equal(t, 6, converted.Hour())
}

func TestConvertTimeToLocationFixedOffset(t *testing.T) {
	datetime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	converted, err := ConvertTimeToLocation(datetime, "+01:00")
	require.NoError(t, err)
	require.Equal(t, 13, converted.Hour())
}

func TestConvertTimeToLocationRejectsGarbage(t *testing.T) {
	_, err := ConvertTimeToLocation(time.Now(), "not-a-zone")
	require.Error(t, err)
}

func TestOffsetToDuration(t *testing.T) {
	d, err := OffsetToDuration("-05:30")
	require.NoError(t, err)
	require.Equal(t, -(5*time.Hour + 30*time.Minute), d)
}

func TestSecondsToOffsetRoundTrips(t *testing.T) {
	require.Equal(t, "+01:30", SecondsToOffset(90*60))
	require.Equal(t, "-01:30", SecondsToOffset(-90*60))
}
