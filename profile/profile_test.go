// Copyright 2025 The Resumatch Authors
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

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_TotalWeight(t *testing.T) {
	p := &Profile{
		Required: map[string]float64{"光学": 1.0, "工程师": 0.8},
		Bonus:    map[string]float64{"zemax": 0.5},
	}
	assert.InDelta(t, 2.3, p.TotalWeight(), 1e-9)
}

func TestProfile_RejectsNegativeWeight(t *testing.T) {
	p := &Profile{Required: map[string]float64{"光学": -1}}
	assert.Error(t, p.Validate())

	_, err := NewRegistry(map[string]*Profile{"光学工程师": p})
	assert.Error(t, err)
}

func TestRegistry_ExactMatchOnly(t *testing.T) {
	reg, err := NewRegistry(map[string]*Profile{
		"光学工程师": {Required: map[string]float64{"光学": 1.0}},
	})
	require.NoError(t, err)

	assert.NotNil(t, reg.Lookup("光学工程师"))
	assert.Nil(t, reg.Lookup("光学"))
	assert.Nil(t, reg.Lookup("资深光学工程师"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := `光学工程师:
  required:
    光学: 1.0
    工程师: 0.8
  bonus:
    zemax: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)

	p := reg.Lookup("光学工程师")
	require.NotNil(t, p)
	assert.InDelta(t, 1.0, p.Required["光学"], 1e-9)
	assert.InDelta(t, 0.5, p.Bonus["zemax"], 1e-9)
	assert.Equal(t, 1, reg.Roles())
}

func TestEmpty(t *testing.T) {
	assert.Nil(t, Empty().Lookup("任意职位"))
}
