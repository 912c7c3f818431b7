package server

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/tempodev/tempo/scheduler/domain"
)

func Test_LeastLaxity_SingleNodeOrder(t *testing.T) {
	app := domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "a", WCET: 2, Deadline: 10},
			{ID: "b", WCET: 2, Deadline: 5},
		},
	}
	schedule, err := scheduleLeastLaxity(app, makeTestPlatform("1"))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if schedule.Name != "LL Multi Node" {
		t.Errorf("expected name LL Multi Node, got: %v", schedule.Name)
	}

	// b has laxity 3 at t0, a has 8: b runs to completion first.
	want := []domain.ScheduleEntry{
		{TaskID: "b", NodeID: "1", StartTime: 0, EndTime: 2, Deadline: 5},
		{TaskID: "a", NodeID: "1", StartTime: 2, EndTime: 4, Deadline: 10},
	}
	if !reflect.DeepEqual(schedule.Entries, want) {
		t.Errorf("expected:\n%v\ngot:\n%v", spew.Sdump(want), spew.Sdump(schedule.Entries))
	}
}

// A released task with lower laxity preempts a running one; the preempted
// task's entry spans longer than its WCET.
func Test_LeastLaxity_Preemption(t *testing.T) {
	app := domain.ApplicationData{
		Tasks: []domain.Task{
			{ID: "a", WCET: 3, Deadline: 8},
			{ID: "r", WCET: 1, Deadline: 9},
			{ID: "b", WCET: 2, Deadline: 4},
		},
		Messages: []domain.Message{{Sender: "r", Receiver: "b"}},
	}
	schedule, err := scheduleLeastLaxity(app, makeTestPlatform("1", "2"))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	// t0: a (laxity 5) on node 1, r (laxity 8) on node 2.
	// t1: r done releases b (laxity 1); b takes node 1 from a.
	// t3: b done; a resumes on node 1 and finishes at t5.
	want := []domain.ScheduleEntry{
		{TaskID: "r", NodeID: "2", StartTime: 0, EndTime: 1, Deadline: 9},
		{TaskID: "b", NodeID: "1", StartTime: 1, EndTime: 3, Deadline: 4},
		{TaskID: "a", NodeID: "1", StartTime: 0, EndTime: 5, Deadline: 8},
	}
	if !reflect.DeepEqual(schedule.Entries, want) {
		t.Errorf("expected:\n%v\ngot:\n%v", spew.Sdump(want), spew.Sdump(schedule.Entries))
	}

	a, _ := entryByTask(schedule, "a")
	if a.EndTime-a.StartTime <= 3 {
		t.Errorf("expected a's span to show preemption, got %d-%d", a.StartTime, a.EndTime)
	}
}

func Test_LeastLaxity_DependentWaitsForProducer(t *testing.T) {
	schedule, err := scheduleLeastLaxity(makeDiamondApp(), makeTestPlatform("1", "2"))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	finish := map[string]int64{}
	start := map[string]int64{}
	for _, e := range schedule.Entries {
		finish[e.TaskID] = e.EndTime
		start[e.TaskID] = e.StartTime
	}
	if len(finish) != 4 {
		t.Fatalf("expected all 4 tasks to complete, got: %v", spew.Sdump(schedule))
	}
	if start["1"] < finish["0"] || start["2"] < finish["0"] {
		t.Errorf("1/2 started before 0 finished: %v", spew.Sdump(schedule.Entries))
	}
	if start["3"] < finish["1"] || start["3"] < finish["2"] {
		t.Errorf("3 started before its producers finished: %v", spew.Sdump(schedule.Entries))
	}
}

func Test_LeastLaxity_CyclicInput(t *testing.T) {
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
	_, err := scheduleLeastLaxity(app, makeTestPlatform("1"))
	if _, ok := err.(*domain.CyclicDependencyError); !ok {
		t.Fatalf("expected CyclicDependencyError, got: %v", err)
	}
}

func Test_LeastLaxity_Deterministic(t *testing.T) {
	app := makeDiamondApp()
	platform := makeTestPlatform("1", "2", "3")
	first, err := scheduleLeastLaxity(app, platform)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := scheduleLeastLaxity(app, platform)
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("schedules differ across runs:\n%v\n%v", spew.Sdump(first), spew.Sdump(again))
		}
	}
}
