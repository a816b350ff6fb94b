package appointment

import "testing"

func sampleList() []Appointment {
	return []Appointment{
		{ID: 1, AppointmentTime: "14:30", Status: StatusScheduled},
		{ID: 2, AppointmentTime: "08:00", Status: StatusCompleted},
		{ID: 3, Status: StatusScheduled},
		{ID: 4, AppointmentTime: "08:00", Status: StatusScheduled},
		{ID: 5, AppointmentTime: "09:15", Status: StatusPending},
	}
}

func TestSortByTime_AscendingLexical(t *testing.T) {
	sorted := SortByTime(sampleList())

	// id 3 has no time, defaults to 00:00 and sorts first; ids 2 and 4
	// tie at 08:00 and keep input order (stability).
	got := make([]int64, len(sorted))
	for i, a := range sorted {
		got[i] = a.ID
	}
	expected := []int64{3, 2, 4, 5, 1}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, got)
		}
	}
}

func TestSortByTime_StableOnEqualTimes(t *testing.T) {
	list := []Appointment{
		{ID: 1, AppointmentTime: "10:00"},
		{ID: 2, AppointmentTime: "10:00"},
		{ID: 3, AppointmentTime: "10:00"},
	}

	sorted := SortByTime(list)
	for i, id := range []int64{1, 2, 3} {
		if sorted[i].ID != id {
			t.Fatalf("Stable sort violated: %v", sorted)
		}
	}
}

func TestSortByTime_DoesNotMutateInput(t *testing.T) {
	list := sampleList()
	SortByTime(list)

	if list[0].ID != 1 {
		t.Error("SortByTime must not mutate its input")
	}
}

func TestApplyFilter_ScheduledSubset(t *testing.T) {
	list := sampleList()
	filtered := ApplyFilter(list, FilterScheduled)

	if len(filtered) != 3 {
		t.Fatalf("Expected 3 scheduled entries, got %d", len(filtered))
	}
	for _, a := range filtered {
		if a.Status != StatusScheduled {
			t.Errorf("Non-scheduled entry leaked through: %+v", a)
		}
	}
}

func TestApplyFilter_AllIsIdentity(t *testing.T) {
	list := sampleList()
	filtered := ApplyFilter(list, FilterAll)

	if len(filtered) != len(list) {
		t.Fatalf("Expected identity, got %d of %d", len(filtered), len(list))
	}
	for i := range list {
		if filtered[i].ID != list[i].ID {
			t.Errorf("Order changed at %d", i)
		}
	}
}

func TestApplyFilter_CompletedOnly(t *testing.T) {
	filtered := ApplyFilter(sampleList(), FilterCompleted)

	if len(filtered) != 1 || filtered[0].ID != 2 {
		t.Errorf("Expected only entry 2, got %v", filtered)
	}
}

func TestApplyFilter_Deterministic(t *testing.T) {
	list := sampleList()

	first := ApplyFilter(list, FilterScheduled)
	second := ApplyFilter(list, FilterScheduled)

	if len(first) != len(second) {
		t.Fatal("Filter not deterministic")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("Filter not deterministic")
		}
	}
}

func TestDisplayName_Fallback(t *testing.T) {
	withPatient := Appointment{Patient: &Patient{Name: "Asha"}, SubPatient: &SubPatient{Name: "Dev"}}
	if got := withPatient.DisplayName(); got != "Asha" {
		t.Errorf("Expected patient name, got %q", got)
	}

	withSub := Appointment{SubPatient: &SubPatient{Name: "Dev"}}
	if got := withSub.DisplayName(); got != "Dev" {
		t.Errorf("Expected sub patient name, got %q", got)
	}

	neither := Appointment{}
	if got := neither.DisplayName(); got != UnknownPatientName {
		t.Errorf("Expected fallback name, got %q", got)
	}
}

func TestQueueToken_PrefersDetails(t *testing.T) {
	a := Appointment{Token: "9", Details: &Details{Token: "4"}}
	if got := a.QueueToken(); got != "4" {
		t.Errorf("Expected details token, got %q", got)
	}

	b := Appointment{Token: "9"}
	if got := b.QueueToken(); got != "9" {
		t.Errorf("Expected top-level token, got %q", got)
	}
}
