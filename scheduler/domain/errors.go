package domain

import "fmt"

// The three failure kinds a scheduling call can surface to a caller. The
// computation is deterministic so none of these are retried internally;
// the API layer translates them into structured error responses.

// InvalidTaskError indicates a task with a missing field or a non positive
// WCET.
type InvalidTaskError struct {
	TaskID string
	Reason string
}

func NewInvalidTaskError(taskID, reason string) *InvalidTaskError {
	return &InvalidTaskError{TaskID: taskID, Reason: reason}
}

func (e *InvalidTaskError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("invalid task: %s", e.Reason)
	}
	return fmt.Sprintf("invalid task %s: %s", e.TaskID, e.Reason)
}

// UnknownTaskReferenceError indicates a message naming a sender or receiver
// id that is not present in the task list.
type UnknownTaskReferenceError struct {
	Sender   string
	Receiver string
	Unknown  string
}

func NewUnknownTaskReferenceError(sender, receiver, unknown string) *UnknownTaskReferenceError {
	return &UnknownTaskReferenceError{Sender: sender, Receiver: receiver, Unknown: unknown}
}

func (e *UnknownTaskReferenceError) Error() string {
	return fmt.Sprintf("message %s->%s references unknown task id %s", e.Sender, e.Receiver, e.Unknown)
}

// CyclicDependencyError indicates the ready set emptied before every task
// was scheduled: the message graph contains a cycle, so the remaining tasks
// can never reach zero unmet predecessors. Returning a partial schedule
// instead would silently drop tasks, so this is always a hard failure.
type CyclicDependencyError struct {
	Unscheduled []string
}

func NewCyclicDependencyError(unscheduled []string) *CyclicDependencyError {
	return &CyclicDependencyError{Unscheduled: unscheduled}
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %d tasks can never become ready: %v", len(e.Unscheduled), e.Unscheduled)
}
