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

// Package profile holds role keyword profiles for keyword-coverage scoring.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile maps one role to its weighted required and bonus terms.
//
// Weights must be non-negative. A profile with no terms degrades ranking
// to pure vector similarity.
type Profile struct {
	// Required terms represent core role fit.
	Required map[string]float64 `yaml:"required"`

	// Bonus terms represent desirable extras.
	Bonus map[string]float64 `yaml:"bonus"`
}

// TotalWeight is the sum of all required and bonus weights.
func (p *Profile) TotalWeight() float64 {
	var total float64
	for _, w := range p.Required {
		total += w
	}
	for _, w := range p.Bonus {
		total += w
	}
	return total
}

// Validate checks that every weight is non-negative.
func (p *Profile) Validate() error {
	for term, w := range p.Required {
		if w < 0 {
			return fmt.Errorf("required term %q has negative weight %v", term, w)
		}
	}
	for term, w := range p.Bonus {
		if w < 0 {
			return fmt.Errorf("bonus term %q has negative weight %v", term, w)
		}
	}
	return nil
}

// Registry looks up profiles by exact role name. No fuzzy matching happens
// at this layer.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry builds a registry from a role-to-profile map.
func NewRegistry(profiles map[string]*Profile) (*Registry, error) {
	for role, p := range profiles {
		if p == nil {
			return nil, fmt.Errorf("profile for role %q is empty", role)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile for role %q: %w", role, err)
		}
	}
	return &Registry{profiles: profiles}, nil
}

// Load reads a registry from a YAML file of the form:
//
//	光学工程师:
//	  required:
//	    光学: 1.0
//	    工程师: 0.8
//	  bonus:
//	    zemax: 0.5
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var profiles map[string]*Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}
	return NewRegistry(profiles)
}

// Empty returns a registry with no profiles. Every lookup misses, so
// ranking degrades to vector and quality signals only.
func Empty() *Registry {
	return &Registry{profiles: map[string]*Profile{}}
}

// Lookup returns the profile for the exact role string, or nil when no
// profile is configured. A nil result is not an error.
func (r *Registry) Lookup(role string) *Profile {
	if r == nil {
		return nil
	}
	return r.profiles[role]
}

// Roles returns the number of configured profiles.
func (r *Registry) Roles() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}
