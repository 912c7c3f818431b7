/*
package server provides the Scheduler which turns task graph applications into
time ordered execution plans.

* Concepts *
WCET:
  Worst case execution time. Once a task starts on a node it occupies the node
  for exactly this long; the EDF/LDF drivers never preempt.

Deadline policies:
  EDF orders the ready set by deadline ascending, LDF by deadline descending.
  Both tie break by task id ascending so identical inputs always produce
  identical schedules.

Ready set:
  The tasks whose predecessors (per the application's messages) have all
  finished. Seeded from the tasks with no predecessors, re-ordered every time
  a task is released because a freed task can carry any deadline.

Link delay:
  Multi node platforms describe directed links with a communication delay.
  A dependent running on a different node than its producer cannot start
  before producer end + delay. Missing links resolve to zero delay.

Laxity:
  deadline - now - remaining execution time. The least laxity driver is a
  discrete time simulation that executes one unit of the minimum laxity task
  per node per tick and allows preemption.

* Logic *
Schedule Call:
Validate the application (and platform for multi node).
Build the request scoped dependency graph: adjacency, in-degree, id index.
Drive the ready set: pick per policy, place on a timeline, release dependents.
Fail with a cyclic dependency error if the ready set drains early; a partial
schedule is never returned.
*/
package server
