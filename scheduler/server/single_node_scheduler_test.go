package server

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/tempodev/tempo/scheduler/domain"
)

func makeIndependentApp() domain.ApplicationData {
	return domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "0", WCET: 20, Deadline: 250},
			{ID: "1", WCET: 20, Deadline: 250},
			{ID: "2", WCET: 20, Deadline: 300},
			{ID: "3", WCET: 20, Deadline: 256},
		},
	}
}

func assertOrderAndTimes(t *testing.T, schedule *domain.Schedule, wantOrder []string) {
	t.Helper()
	if len(schedule.Entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got: %v", len(wantOrder), spew.Sdump(schedule))
	}
	var clock int64
	for i, entry := range schedule.Entries {
		if entry.TaskID != wantOrder[i] {
			t.Fatalf("expected order %v, got: %v", wantOrder, spew.Sdump(schedule.Entries))
		}
		if entry.StartTime != clock || entry.EndTime != clock+20 {
			t.Errorf("expected %s to run %d-%d, got %d-%d",
				entry.TaskID, clock, clock+20, entry.StartTime, entry.EndTime)
		}
		clock = entry.EndTime
	}
}

func Test_SingleNode_EDF(t *testing.T) {
	schedule, err := scheduleSingleNode(makeIndependentApp(), EDF)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if schedule.Name != "EDF Single Node" {
		t.Errorf("expected name EDF Single Node, got: %v", schedule.Name)
	}
	// deadline ascending, ties by id: 250/0, 250/1, 256/3, 300/2
	assertOrderAndTimes(t, schedule, []string{"0", "1", "3", "2"})
}

func Test_SingleNode_LDF(t *testing.T) {
	schedule, err := scheduleSingleNode(makeIndependentApp(), LDF)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if schedule.Name != "LDF Single Node" {
		t.Errorf("expected name LDF Single Node, got: %v", schedule.Name)
	}
	// deadline descending, ties by id: 300/2, 256/3, 250/0, 250/1
	assertOrderAndTimes(t, schedule, []string{"2", "3", "0", "1"})
}

// A released task with an earlier deadline must jump ahead of tasks already
// waiting in the ready set.
func Test_SingleNode_ReleasePreemptsReadyOrder(t *testing.T) {
	app := domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "a", WCET: 5, Deadline: 50},
			{ID: "b", WCET: 5, Deadline: 100},
			{ID: "c", WCET: 5, Deadline: 10}, // released by a, beats b
		},
		Messages: []domain.Message{{Sender: "a", Receiver: "c"}},
	}
	schedule, err := scheduleSingleNode(app, EDF)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	got := []string{}
	for _, e := range schedule.Entries {
		got = append(got, e.TaskID)
	}
	if !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Errorf("expected [a c b], got: %v", got)
	}
}

func Test_SingleNode_DependenciesRespected(t *testing.T) {
	schedule, err := scheduleSingleNode(makeDiamondApp(), EDF)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	finished := map[string]int64{}
	for _, e := range schedule.Entries {
		finished[e.TaskID] = e.EndTime
		if e.TaskID == "3" && (e.StartTime < finished["1"] || e.StartTime < finished["2"]) {
			t.Errorf("3 started before its producers finished: %v", spew.Sdump(schedule.Entries))
		}
	}
	if len(finished) != 4 {
		t.Errorf("expected all 4 tasks scheduled, got: %v", finished)
	}
}

func Test_SingleNode_CyclicInput(t *testing.T) {
	app := domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "a", WCET: 5, Deadline: 50},
			{ID: "b", WCET: 5, Deadline: 60},
		},
		Messages: []domain.Message{
			{Sender: "a", Receiver: "b"},
			{Sender: "b", Receiver: "a"},
		},
	}
	_, err := scheduleSingleNode(app, EDF)
	cycErr, ok := err.(*domain.CyclicDependencyError)
	if !ok {
		t.Fatalf("expected CyclicDependencyError, got: %v", err)
	}
	if !reflect.DeepEqual(cycErr.Unscheduled, []string{"a", "b"}) {
		t.Errorf("expected unscheduled [a b], got: %v", cycErr.Unscheduled)
	}
}

// A cycle hanging off a schedulable prefix must also fail, not silently
// drop the unreachable tasks.
func Test_SingleNode_PartialCycle(t *testing.T) {
	app := domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "a", WCET: 5, Deadline: 50},
			{ID: "b", WCET: 5, Deadline: 60},
			{ID: "c", WCET: 5, Deadline: 70},
		},
		Messages: []domain.Message{
			{Sender: "b", Receiver: "c"},
			{Sender: "c", Receiver: "b"},
		},
	}
	_, err := scheduleSingleNode(app, EDF)
	cycErr, ok := err.(*domain.CyclicDependencyError)
	if !ok {
		t.Fatalf("expected CyclicDependencyError, got: %v", err)
	}
	if !reflect.DeepEqual(cycErr.Unscheduled, []string{"b", "c"}) {
		t.Errorf("expected unscheduled [b c], got: %v", cycErr.Unscheduled)
	}
}

func Test_SingleNode_Deterministic(t *testing.T) {
	app := makeDiamondApp()
	first, err := scheduleSingleNode(app, LDF)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := scheduleSingleNode(app, LDF)
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("schedules differ across runs:\n%v\n%v", spew.Sdump(first), spew.Sdump(again))
		}
	}
}
