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

package programs

import (
	"github.com/trivago/slabrt/core"
)

const (
	packageSieve  = "programs/sieve"
	packagePrimes = "programs/primes"
	sieveLimit    = 50
)

var (
	sieve  core.Slice[bool]
	primes core.Slice[int]
)

func init() {
	core.Initializers.Register(packagePrimes, initPrimes, packageSieve)
	core.Initializers.Register(packageSieve, initSieve)
}

// initSieve marks all composite numbers below sieveLimit.
func initSieve() {
	sieve = core.AllocDef(sieveLimit, false)
	for i := 2; i*i < sieveLimit; i++ {
		if sieve.At(i) {
			continue
		}
		for j := i * i; j < sieveLimit; j += i {
			sieve.Set(j, true)
		}
	}
}

func initPrimes() {
	primes = core.AllocCap[int](0, 8)
	for i := 2; i < sieve.Len(); i++ {
		if !sieve.At(i) {
			primes.Push(i)
		}
	}
}

// Primes prints the table created during package initialization.
func Primes() {
	core.Println(primes)
}
