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
	"bytes"
	"testing"

	"github.com/trivago/tgo/ttesting"
)

func TestRedirectOutput(t *testing.T) {
	expect := ttesting.NewExpect(t)

	outer := new(bytes.Buffer)
	restoreOuter := RedirectOutput(outer)
	Print("outer ")

	inner := new(bytes.Buffer)
	restoreInner := RedirectOutput(inner)
	Println("inner", 1, 2)
	expect.Equal("outer ", outer.String())
	expect.Equal("", inner.String())

	expect.NoError(Flush())
	expect.Equal("inner 1 2\n", inner.String())

	restoreInner()
	Print("again")
	restoreOuter()

	expect.Equal("outer again", outer.String())
	expect.True(Stdout() != nil)
}
