package server

import (
	"sort"

	"github.com/tempodev/tempo/scheduler/domain"
)

// nodeClocks tracks the next free time of every node in the platform.
// Node ids are kept sorted so the min-clock tie break is deterministic.
type nodeClocks struct {
	ids   []string
	free  map[string]int64
	links []domain.Link
}

func newNodeClocks(platform domain.PlatformData) *nodeClocks {
	nc := &nodeClocks{
		free:  make(map[string]int64, len(platform.Nodes)),
		links: platform.Links,
	}
	for _, node := range platform.Nodes {
		nc.ids = append(nc.ids, node.ID)
		nc.free[node.ID] = 0
	}
	sort.Strings(nc.ids)
	return nc
}

// earliestFree returns the node that frees up first, ties broken by node id
// ascending. Greedy load balancing; not globally optimal for makespan.
func (nc *nodeClocks) earliestFree() string {
	best := nc.ids[0]
	for _, id := range nc.ids[1:] {
		if nc.free[id] < nc.free[best] {
			best = id
		}
	}
	return best
}

// holdFor raises a node's clock to account for a message crossing the link
// from producerNode: the receiving node cannot start the dependent before
// the producer's output arrives.
func (nc *nodeClocks) holdFor(node, producerNode string, producerEnd int64) {
	arrival := producerEnd + linkDelay(nc.links, producerNode, node)
	if arrival > nc.free[node] {
		nc.free[node] = arrival
	}
}

// producerDone records where and when one predecessor of a task finished.
type producerDone struct {
	node string
	end  int64
}

// scheduleMultiNode plans an application across the platform's nodes.
// Each iteration takes the highest priority ready task and places it on the
// node that frees up first. A task never starts before every predecessor's
// output has arrived: arrival is the predecessor's end time, plus the link
// delay when the two run on different nodes. When a released dependent
// additionally carries a node pre-assignment hint on a different node than
// its producer, that node's clock is held back up front so later placements
// on it see the delay too.
func scheduleMultiNode(app domain.ApplicationData, platform domain.PlatformData, policy Policy) (*domain.Schedule, error) {
	g, err := buildDepGraph(app)
	if err != nil {
		return nil, err
	}

	clocks := newNodeClocks(platform)
	ready := newReadyQueue(policy, g.roots())
	entries := make([]domain.ScheduleEntry, 0, len(app.Tasks))
	producers := make(map[string][]producerDone)

	for !ready.empty() {
		task := ready.pop()
		nodeID := clocks.earliestFree()

		start := clocks.free[nodeID]
		for _, p := range producers[task.ID] {
			arrival := p.end
			if p.node != nodeID {
				arrival += linkDelay(clocks.links, p.node, nodeID)
			}
			if arrival > start {
				start = arrival
			}
		}
		end := start + task.WCET
		entries = append(entries, domain.ScheduleEntry{
			TaskID:    task.ID,
			NodeID:    nodeID,
			StartTime: start,
			EndTime:   end,
			Deadline:  task.Deadline,
		})
		clocks.free[nodeID] = end

		for _, depID := range g.adjacent[task.ID] {
			producers[depID] = append(producers[depID], producerDone{node: nodeID, end: end})
		}
		for _, dep := range g.release(task.ID) {
			if dep.NodeID != "" && dep.NodeID != nodeID {
				if _, ok := clocks.free[dep.NodeID]; ok {
					clocks.holdFor(dep.NodeID, nodeID, end)
				}
			}
			ready.push(dep)
		}
	}

	if len(entries) < len(app.Tasks) {
		return nil, domain.NewCyclicDependencyError(g.unreached())
	}
	return &domain.Schedule{
		Name:    policy.String() + " Multi Node",
		Entries: entries,
	}, nil
}
