// Package domain provides definitions for Tempo applications, platforms and schedules
package domain

import (
	"encoding/json"
	"fmt"
)

// Task is one unit of work in an application. WCET is the worst case
// execution time; once a task starts on a node it occupies the node for
// exactly WCET time units. Deadline is absolute. NodeID is an optional
// pre-assignment hint used by the multi node schedulers when accounting
// for link delay; most callers leave it empty.
type Task struct {
	ID       string `json:"id"`
	WCET     int64  `json:"wcet"`
	Deadline int64  `json:"deadline"`
	NodeID   string `json:"node_id,omitempty"`
}

func (t Task) String() string {
	return fmt.Sprintf("task:%s, wcet:%d, deadline:%d", t.ID, t.WCET, t.Deadline)
}

// Message is a data/control dependency between two tasks: Receiver cannot
// start until Sender has finished.
type Message struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// ApplicationData is the task graph a client asks us to schedule.
type ApplicationData struct {
	Tasks    []Task    `json:"tasks"`
	Messages []Message `json:"messages"`
}

// Node is one execution timeline in a distributed platform.
type Node struct {
	ID string `json:"id"`
}

// Link is a directed connection between two nodes with a communication
// delay. Lookup is by exact (start, end) match; a missing link means zero
// delay.
type Link struct {
	StartNode string `json:"start_node"`
	EndNode   string `json:"end_node"`
	LinkDelay int64  `json:"link_delay"`
}

// PlatformData describes the compute nodes and the links between them.
type PlatformData struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// ScheduleEntry is one placed task. EndTime is always StartTime plus the
// task's WCET. Field names are fixed: the visualization frontend consumes
// this JSON directly.
type ScheduleEntry struct {
	TaskID    string `json:"task_id"`
	NodeID    string `json:"node_id"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Deadline  int64  `json:"deadline"`
}

// Schedule is the ordered result of one scheduling call.
type Schedule struct {
	Name    string          `json:"name"`
	Entries []ScheduleEntry `json:"schedule"`
}

// Serialize Schedule to json, an error is returned if the
// object cannot be serialized.
func (s *Schedule) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// DeserializeSchedule parses a json slice into a Schedule,
// an error is returned if it cannot be deserialized.
func DeserializeSchedule(input []byte) (*Schedule, error) {
	s := &Schedule{}
	if err := json.Unmarshal(input, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ValidateApplication checks an application before scheduling, returning an
// *InvalidTaskError or *UnknownTaskReferenceError if invalid.
func ValidateApplication(app ApplicationData) error {
	if len(app.Tasks) == 0 {
		return NewInvalidTaskError("", "must have at least 1 task; was empty")
	}
	ids := make(map[string]bool, len(app.Tasks))
	for _, task := range app.Tasks {
		if task.ID == "" {
			return NewInvalidTaskError(task.ID, "invalid task id \"\"")
		}
		if task.WCET <= 0 {
			return NewInvalidTaskError(task.ID, fmt.Sprintf("invalid wcet:%d. Must be > 0", task.WCET))
		}
		if ids[task.ID] {
			return NewInvalidTaskError(task.ID, "duplicate task id")
		}
		ids[task.ID] = true
	}
	for _, msg := range app.Messages {
		if !ids[msg.Sender] {
			return NewUnknownTaskReferenceError(msg.Sender, msg.Receiver, msg.Sender)
		}
		if !ids[msg.Receiver] {
			return NewUnknownTaskReferenceError(msg.Sender, msg.Receiver, msg.Receiver)
		}
	}
	return nil
}

// ValidatePlatform checks a platform description for multi node scheduling.
func ValidatePlatform(platform PlatformData) error {
	if len(platform.Nodes) == 0 {
		return fmt.Errorf("invalid platform. Must have at least 1 node; was empty")
	}
	ids := make(map[string]bool, len(platform.Nodes))
	for _, node := range platform.Nodes {
		if node.ID == "" {
			return fmt.Errorf("invalid node id \"\"")
		}
		if ids[node.ID] {
			return fmt.Errorf("duplicate node id:%s", node.ID)
		}
		ids[node.ID] = true
	}
	for _, link := range platform.Links {
		if link.LinkDelay < 0 {
			return fmt.Errorf("invalid link %s->%s. Delay must be >= 0; was %d",
				link.StartNode, link.EndNode, link.LinkDelay)
		}
		if !ids[link.StartNode] || !ids[link.EndNode] {
			return fmt.Errorf("link %s->%s references an unknown node", link.StartNode, link.EndNode)
		}
	}
	return nil
}
