package server

import (
	"sort"

	"github.com/tempodev/tempo/scheduler/domain"
)

// Policy is the ready set ordering strategy. EDF picks the earliest
// deadline first, LDF the latest. Both drivers share one control flow
// parameterized by Policy.
type Policy int

const (
	EDF Policy = iota
	LDF
)

func (p Policy) String() string {
	if p == LDF {
		return "LDF"
	}
	return "EDF"
}

// readyQueue holds the tasks whose predecessors have all finished, ordered
// by the policy's deadline key with task id ascending as the tie break.
// The queue re-sorts on every release batch because a newly freed task can
// carry any deadline relative to the tasks already waiting.
type readyQueue struct {
	policy Policy
	tasks  []domain.Task
}

func newReadyQueue(policy Policy, seed []domain.Task) *readyQueue {
	q := &readyQueue{policy: policy}
	q.push(seed...)
	return q
}

func (q *readyQueue) push(tasks ...domain.Task) {
	q.tasks = append(q.tasks, tasks...)
	sort.Slice(q.tasks, func(i, j int) bool {
		a, b := q.tasks[i], q.tasks[j]
		if a.Deadline != b.Deadline {
			if q.policy == LDF {
				return a.Deadline > b.Deadline
			}
			return a.Deadline < b.Deadline
		}
		return a.ID < b.ID
	})
}

func (q *readyQueue) pop() domain.Task {
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t
}

func (q *readyQueue) empty() bool {
	return len(q.tasks) == 0
}
