package engine

import (
	"encoding/json"
	"fmt"
)

// HourSet is a set of hours of day (0–23) with O(1) membership,
// backed by a bitmask. The zero value is the empty set.
type HourSet uint32

// ParseHours builds an HourSet, rejecting out-of-range hours.
func ParseHours(hours []int) (HourSet, error) {
	var set HourSet
	for _, h := range hours {
		if h < 0 || h > 23 {
			return 0, fmt.Errorf("hour %d out of range 0-23", h)
		}
		set |= 1 << uint(h)
	}
	return set, nil
}

// MustHours is ParseHours for hard-coded defaults.
func MustHours(hours ...int) HourSet {
	set, err := ParseHours(hours)
	if err != nil {
		panic(err)
	}
	return set
}

func (s HourSet) Contains(hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	return s&(1<<uint(hour)) != 0
}

func (s HourSet) Empty() bool { return s == 0 }

// Hours returns the members in ascending order.
func (s HourSet) Hours() []int {
	var hours []int
	for h := 0; h < 24; h++ {
		if s.Contains(h) {
			hours = append(hours, h)
		}
	}
	return hours
}

func (s HourSet) MarshalJSON() ([]byte, error) {
	hours := s.Hours()
	if hours == nil {
		hours = []int{}
	}
	return json.Marshal(hours)
}

func (s *HourSet) UnmarshalJSON(data []byte) error {
	var hours []int
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	set, err := ParseHours(hours)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
