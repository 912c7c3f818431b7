package server

import (
	"github.com/tempodev/tempo/scheduler/domain"
)

// The single node schedulers run every task on one timeline, so the node id
// in the output is fixed.
const singleNodeID = "1"

// scheduleSingleNode plans an application on a single timeline: repeatedly
// take the highest priority ready task, run it to completion at the current
// clock, then release its dependents. Tasks are non preemptible, so the
// timeline is contiguous.
func scheduleSingleNode(app domain.ApplicationData, policy Policy) (*domain.Schedule, error) {
	g, err := buildDepGraph(app)
	if err != nil {
		return nil, err
	}

	ready := newReadyQueue(policy, g.roots())
	entries := make([]domain.ScheduleEntry, 0, len(app.Tasks))
	var clock int64

	for !ready.empty() {
		task := ready.pop()
		start := clock
		end := start + task.WCET
		entries = append(entries, domain.ScheduleEntry{
			TaskID:    task.ID,
			NodeID:    singleNodeID,
			StartTime: start,
			EndTime:   end,
			Deadline:  task.Deadline,
		})
		clock = end
		ready.push(g.release(task.ID)...)
	}

	if len(entries) < len(app.Tasks) {
		return nil, domain.NewCyclicDependencyError(g.unreached())
	}
	return &domain.Schedule{
		Name:    policy.String() + " Single Node",
		Entries: entries,
	}, nil
}
