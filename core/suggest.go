// Copyright 2015-2018 trivago N.V.
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

package core

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// closestMatch returns the candidate with the smallest edit distance to name
// or an empty string if no candidate is reasonably close.
func closestMatch(name string, candidates []string) string {
	best := ""
	bestDistance := len(name)/2 + 1
	lowerName := strings.ToLower(name)

	for _, candidate := range candidates {
		distance := levenshtein.Distance(lowerName, strings.ToLower(candidate))
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}
