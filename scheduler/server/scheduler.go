package server

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tempodev/tempo/common/stats"
	"github.com/tempodev/tempo/scheduler/domain"
)

// Scheduler computes execution plans for task graph applications. Every
// method is a synchronous, deterministic pure computation over its inputs:
// no caller data is mutated and no state survives the call, so one
// Scheduler may serve concurrent requests.
type Scheduler struct {
	stat stats.StatsReceiver
}

func NewScheduler(stat stats.StatsReceiver) *Scheduler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Scheduler{stat: stat}
}

// ScheduleSingleNode plans an application on one compute node under the
// given deadline policy.
func (s *Scheduler) ScheduleSingleNode(app domain.ApplicationData, policy Policy) (*domain.Schedule, error) {
	return s.run(policy.String()+" Single Node", func() (*domain.Schedule, error) {
		if err := domain.ValidateApplication(app); err != nil {
			return nil, err
		}
		return scheduleSingleNode(app, policy)
	})
}

// ScheduleMultiNode plans an application across the platform's nodes under
// the given deadline policy, accounting for inter node link delay.
func (s *Scheduler) ScheduleMultiNode(app domain.ApplicationData, platform domain.PlatformData, policy Policy) (*domain.Schedule, error) {
	return s.run(policy.String()+" Multi Node", func() (*domain.Schedule, error) {
		if err := domain.ValidateApplication(app); err != nil {
			return nil, err
		}
		if err := domain.ValidatePlatform(platform); err != nil {
			return nil, err
		}
		return scheduleMultiNode(app, platform, policy)
	})
}

// ScheduleLeastLaxity plans an application across the platform's nodes with
// the preemptive least laxity simulation.
func (s *Scheduler) ScheduleLeastLaxity(app domain.ApplicationData, platform domain.PlatformData) (*domain.Schedule, error) {
	return s.run("LL Multi Node", func() (*domain.Schedule, error) {
		if err := domain.ValidateApplication(app); err != nil {
			return nil, err
		}
		if err := domain.ValidatePlatform(platform); err != nil {
			return nil, err
		}
		return scheduleLeastLaxity(app, platform)
	})
}

func (s *Scheduler) run(name string, compute func() (*domain.Schedule, error)) (*domain.Schedule, error) {
	stat := s.stat.Scope(scopeName(name))
	stat.Counter(stats.SchedRequestsCounter).Inc(1)
	defer stat.Latency(stats.SchedComputeLatency_ms).Time().Stop()

	schedule, err := compute()
	if err != nil {
		switch err.(type) {
		case *domain.CyclicDependencyError:
			stat.Counter(stats.SchedCyclicRequestsCounter).Inc(1)
		default:
			stat.Counter(stats.SchedInvalidRequestsCounter).Inc(1)
		}
		log.WithFields(log.Fields{"policy": name, "err": err}).Info("Scheduling failed")
		return nil, err
	}

	stat.Counter(stats.SchedRequestsOkCounter).Inc(1)
	stat.Counter(stats.SchedScheduledTasksCounter).Inc(int64(len(schedule.Entries)))
	log.WithFields(log.Fields{"policy": name, "numTasks": len(schedule.Entries)}).Info("Scheduled tasks")
	return schedule, nil
}

// scopeName flattens a policy display name into a stats scope element,
// ex: "EDF Single Node" -> "edf_single_node".
func scopeName(name string) string {
	return strings.ToLower(strings.Replace(name, " ", "_", -1))
}
