package store

import (
	"testing"

	"todosync/internal/service"
)

func TestFilter_Matches(t *testing.T) {
	task := service.Task{ID: "1", Status: service.StatusCompleted, Priority: service.PriorityHigh}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "all/all", filter: NewFilter(), want: true},
		{name: "zero value shows everything", filter: Filter{}, want: true},
		{name: "status match", filter: Filter{Status: "completed", Priority: All}, want: true},
		{name: "status mismatch", filter: Filter{Status: "pending", Priority: All}, want: false},
		{name: "priority match", filter: Filter{Status: All, Priority: "high"}, want: true},
		{name: "priority mismatch", filter: Filter{Status: All, Priority: "low"}, want: false},
		{name: "both match", filter: Filter{Status: "completed", Priority: "high"}, want: true},
		{name: "one of two mismatches", filter: Filter{Status: "completed", Priority: "medium"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_ApplyPreservesOrderAndInput(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Status: service.StatusCompleted},
		{ID: "b", Status: service.StatusPending},
		{ID: "c", Status: service.StatusCompleted},
	}
	f := Filter{Status: "completed", Priority: All}

	got := f.Apply(tasks)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("Apply() = %+v", got)
	}
	if len(tasks) != 3 || tasks[1].ID != "b" {
		t.Errorf("Apply() modified its input: %+v", tasks)
	}
	if !f.IsActive() || NewFilter().IsActive() {
		t.Error("IsActive() mismatch")
	}
}

func TestParseFilters(t *testing.T) {
	if f, err := ParseStatusFilter(""); err != nil || f != All {
		t.Errorf("empty status filter = %q, %v", f, err)
	}
	if f, err := ParseStatusFilter(" Completed "); err != nil || f != "completed" {
		t.Errorf("status filter = %q, %v", f, err)
	}
	if _, err := ParseStatusFilter("done"); err == nil {
		t.Error("expected error for unknown status")
	}
	if f, err := ParsePriorityFilter("ALL"); err != nil || f != All {
		t.Errorf("priority filter = %q, %v", f, err)
	}
	if _, err := ParsePriorityFilter("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestFilterCycles(t *testing.T) {
	s := StatusFilter(All)
	var seen []StatusFilter
	for i := 0; i < 3; i++ {
		s = s.Next()
		seen = append(seen, s)
	}
	if seen[0] != "pending" || seen[1] != "completed" || seen[2] != All {
		t.Errorf("status cycle = %v", seen)
	}

	p := PriorityFilter(All).Next().Next().Next().Next()
	if p != All {
		t.Errorf("priority cycle did not wrap, got %q", p)
	}
	if PriorityFilter("bogus").Next() != All {
		t.Error("unknown priority filter should reset to all")
	}
}

func TestOpError(t *testing.T) {
	err := &OpError{Op: "delete", TaskID: "42", Err: ErrBusy}
	if err.Error() != "delete [42]: "+ErrBusy.Error() {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Unwrap() != ErrBusy {
		t.Error("Unwrap() should return the cause")
	}
	if (&OpError{Op: "fetch", Err: ErrNotAuthenticated}).Error() != "fetch: "+ErrNotAuthenticated.Error() {
		t.Error("unexpected message without task id")
	}
}
