package engine

import (
	"encoding/json"
	"testing"
)

func TestParseHours(t *testing.T) {
	set, err := ParseHours([]int{9, 10, 15})
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range []int{9, 10, 15} {
		if !set.Contains(h) {
			t.Fatalf("missing hour %d", h)
		}
	}
	if set.Contains(11) {
		t.Fatal("contains hour that was never added")
	}
}

func TestParseHoursRejectsOutOfRange(t *testing.T) {
	if _, err := ParseHours([]int{24}); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := ParseHours([]int{-1}); err == nil {
		t.Fatal("expected error for hour -1")
	}
}

func TestHourSetContainsOutOfRange(t *testing.T) {
	set := MustHours(0, 23)
	if set.Contains(-1) || set.Contains(24) {
		t.Fatal("out-of-range hours must never be members")
	}
}

func TestHourSetEmpty(t *testing.T) {
	var set HourSet
	if !set.Empty() {
		t.Fatal("zero value should be empty")
	}
	if MustHours(12).Empty() {
		t.Fatal("non-empty set reported empty")
	}
}

func TestHoursSortedAscending(t *testing.T) {
	set := MustHours(22, 9, 0, 15)
	got := set.Hours()
	want := []int{0, 9, 15, 22}
	if len(got) != len(want) {
		t.Fatalf("hours = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hours = %v, want %v", got, want)
		}
	}
}

func TestHourSetJSONRoundTrip(t *testing.T) {
	set := MustHours(9, 10, 11)
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[9,10,11]" {
		t.Fatalf("marshaled as %s", data)
	}

	var got HourSet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != set {
		t.Fatalf("round trip changed set: %v vs %v", got.Hours(), set.Hours())
	}
}

func TestHourSetJSONEmpty(t *testing.T) {
	var set HourSet
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("empty set marshaled as %s", data)
	}
}

func TestHourSetUnmarshalRejectsBadHours(t *testing.T) {
	var set HourSet
	if err := json.Unmarshal([]byte("[25]"), &set); err == nil {
		t.Fatal("expected error for hour 25")
	}
}
