// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"regexp"
	"strconv"
)

var chunkifyRegexp = regexp.MustCompile(`(\d+|\D+)`)

func chunkify(s string) []string {
	return chunkifyRegexp.FindAllString(s, -1)
}

// AlphanumCompare returns -1, 0 or +1 depending on whether a precedes, equals
// or follows b in natural order, where runs of digits compare by value so
// that "P2" sorts before "P10".
func AlphanumCompare(a, b string) int {
	chunks_a := chunkify(a)
	chunks_b := chunkify(b)

	for i := 0; i < len(chunks_a) && i < len(chunks_b); i++ {
		aInt, aErr := strconv.Atoi(chunks_a[i])
		bInt, bErr := strconv.Atoi(chunks_b[i])

		// If both chunks are numeric, compare them as integers
		if aErr == nil && bErr == nil {
			switch {
			case aInt < bInt:
				return -1
			case aInt > bInt:
				return +1
			}

			// "01" and "1" have the same value, fall back to the text.
		}

		switch {
		case chunks_a[i] < chunks_b[i]:
			return -1
		case chunks_a[i] > chunks_b[i]:
			return +1
		}
	}

	// All shared chunks are equal, the shorter string comes first.
	switch {
	case len(chunks_a) < len(chunks_b):
		return -1
	case len(chunks_a) > len(chunks_b):
		return +1
	default:
		return 0
	}
}
