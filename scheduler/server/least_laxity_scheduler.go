package server

import (
	"sort"

	"github.com/tempodev/tempo/scheduler/domain"
)

// laxityState is the per task accounting for the least laxity simulation.
// Unlike the EDF/LDF drivers, tasks here are preemptible: execution happens
// one time unit at a time and a task's remaining work shrinks as it runs.
type laxityState struct {
	task      domain.Task
	remaining int64
	node      string // pinned to the node it first runs on
	started   int64
	finished  int64
	done      bool
}

func (ls *laxityState) laxity(now int64) int64 {
	return ls.task.Deadline - now - ls.remaining
}

// scheduleLeastLaxity simulates the platform one time unit at a time. Each
// tick, every node picks the ready incomplete task with the least laxity
// (ties broken by task id ascending) and executes one unit of it. A task
// stays on the node it first ran on; it can be preempted there but does not
// migrate, so each output entry maps to one timeline. The loop is bounded
// by the sum of all WCETs: if the simulation stalls with incomplete tasks,
// their predecessors can never finish and the input is cyclic.
func scheduleLeastLaxity(app domain.ApplicationData, platform domain.PlatformData) (*domain.Schedule, error) {
	g, err := buildDepGraph(app)
	if err != nil {
		return nil, err
	}

	states := make(map[string]*laxityState, len(app.Tasks))
	var totalWork int64
	for _, id := range g.order {
		task := g.tasks[id]
		states[id] = &laxityState{task: task, remaining: task.WCET}
		totalWork += task.WCET
	}

	nodeIDs := make([]string, 0, len(platform.Nodes))
	for _, node := range platform.Nodes {
		nodeIDs = append(nodeIDs, node.ID)
	}
	sort.Strings(nodeIDs)

	doneCount := 0
	for now := int64(0); doneCount < len(states); now++ {
		if now >= totalWork {
			return nil, domain.NewCyclicDependencyError(g.unreached())
		}

		ready := readyByLaxity(g, states, now)
		if len(ready) == 0 {
			return nil, domain.NewCyclicDependencyError(g.unreached())
		}

		completed := executeTick(states, ready, nodeIDs, now)

		// Dependents released by this tick's completions become ready from
		// the next tick, after their predecessors have actually finished.
		for _, id := range completed {
			g.release(id)
			doneCount++
		}
	}

	return &domain.Schedule{
		Name:    "LL Multi Node",
		Entries: laxityEntries(g, states),
	}, nil
}

// readyByLaxity returns the incomplete tasks whose predecessors have all
// finished, least laxity first, task id ascending on ties.
func readyByLaxity(g *depGraph, states map[string]*laxityState, now int64) []*laxityState {
	var ready []*laxityState
	for _, id := range g.order {
		ls := states[id]
		if !ls.done && g.inDegree[id] == 0 {
			ready = append(ready, ls)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		li, lj := ready[i].laxity(now), ready[j].laxity(now)
		if li != lj {
			return li < lj
		}
		return ready[i].task.ID < ready[j].task.ID
	})
	return ready
}

// executeTick runs one time unit on every node that has work, returning the
// ids of tasks that completed this tick.
func executeTick(states map[string]*laxityState, ready []*laxityState, nodeIDs []string, now int64) []string {
	taken := make(map[string]bool, len(nodeIDs))
	var completed []string
	for _, nodeID := range nodeIDs {
		var pick *laxityState
		for _, ls := range ready {
			if taken[ls.task.ID] {
				continue
			}
			if ls.node != "" && ls.node != nodeID {
				continue
			}
			pick = ls
			break
		}
		if pick == nil {
			continue
		}
		taken[pick.task.ID] = true
		if pick.node == "" {
			pick.node = nodeID
			pick.started = now
		}
		pick.remaining--
		if pick.remaining == 0 {
			pick.done = true
			pick.finished = now + 1
			completed = append(completed, pick.task.ID)
		}
	}
	return completed
}

// laxityEntries renders the simulation result in completion order. A
// preempted task runs non contiguously, so an entry's span can exceed its
// WCET; start is the first tick the task ran, end the tick it finished.
func laxityEntries(g *depGraph, states map[string]*laxityState) []domain.ScheduleEntry {
	ids := make([]string, 0, len(states))
	for _, id := range g.order {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := states[ids[i]], states[ids[j]]
		if a.finished != b.finished {
			return a.finished < b.finished
		}
		return a.task.ID < b.task.ID
	})
	entries := make([]domain.ScheduleEntry, 0, len(ids))
	for _, id := range ids {
		ls := states[id]
		entries = append(entries, domain.ScheduleEntry{
			TaskID:    ls.task.ID,
			NodeID:    ls.node,
			StartTime: ls.started,
			EndTime:   ls.finished,
			Deadline:  ls.task.Deadline,
		})
	}
	return entries
}
