package server

import (
	"sort"

	"github.com/tempodev/tempo/scheduler/domain"
)

// depGraph is the request scoped adjacency view of an application's task
// graph. It owns copies of the caller's tasks so a scheduling call never
// mutates caller data and the same inputs can be scheduled concurrently.
type depGraph struct {
	// id indexed task lookup, avoids a linear scan on every dependency release
	tasks map[string]domain.Task

	// task ids in input order, for deterministic seeding
	order []string

	// sender id -> receiver ids
	adjacent map[string][]string

	// receiver id -> count of unmet predecessors
	inDegree map[string]int
}

// buildDepGraph builds the dependency graph for one scheduling call.
// Cost is linear in tasks + messages. Messages naming an unknown task id
// are a caller error.
func buildDepGraph(app domain.ApplicationData) (*depGraph, error) {
	g := &depGraph{
		tasks:    make(map[string]domain.Task, len(app.Tasks)),
		order:    make([]string, 0, len(app.Tasks)),
		adjacent: make(map[string][]string),
		inDegree: make(map[string]int, len(app.Tasks)),
	}
	for _, task := range app.Tasks {
		g.tasks[task.ID] = task
		g.order = append(g.order, task.ID)
		g.inDegree[task.ID] = 0
	}
	for _, msg := range app.Messages {
		if _, ok := g.tasks[msg.Sender]; !ok {
			return nil, domain.NewUnknownTaskReferenceError(msg.Sender, msg.Receiver, msg.Sender)
		}
		if _, ok := g.tasks[msg.Receiver]; !ok {
			return nil, domain.NewUnknownTaskReferenceError(msg.Sender, msg.Receiver, msg.Receiver)
		}
		g.adjacent[msg.Sender] = append(g.adjacent[msg.Sender], msg.Receiver)
		g.inDegree[msg.Receiver]++
	}
	return g, nil
}

// roots returns the tasks with no unmet predecessors, in input order.
func (g *depGraph) roots() []domain.Task {
	var ts []domain.Task
	for _, id := range g.order {
		if g.inDegree[id] == 0 {
			ts = append(ts, g.tasks[id])
		}
	}
	return ts
}

// release decrements the in-degree of every dependent of the given task and
// returns the dependents that just became ready.
func (g *depGraph) release(taskID string) []domain.Task {
	var freed []domain.Task
	for _, dep := range g.adjacent[taskID] {
		g.inDegree[dep]--
		if g.inDegree[dep] == 0 {
			freed = append(freed, g.tasks[dep])
		}
	}
	return freed
}

// unreached returns the ids of tasks that still have unmet predecessors,
// sorted for stable error output. Non-empty after a drained ready set means
// the message graph has a cycle.
func (g *depGraph) unreached() []string {
	var ids []string
	for id, deg := range g.inDegree {
		if deg > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
