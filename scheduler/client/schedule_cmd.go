package client

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tempodev/tempo/scheduler/api"
	"github.com/tempodev/tempo/scheduler/domain"
)

type scheduleCmd struct {
	algorithm       string
	applicationFile string
	platformFile    string
}

func (c *scheduleCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "schedule",
		Short: "compute a schedule for an application",
	}
	r.Flags().StringVar(&c.algorithm, "algorithm", "edf_single_node",
		fmt.Sprintf("scheduling algorithm, one of %v", AlgorithmNames()))
	r.Flags().StringVar(&c.applicationFile, "application", "", "path to the application json (tasks + messages)")
	r.Flags().StringVar(&c.platformFile, "platform", "", "path to the platform json (nodes + links), multi node only")
	return r
}

func (c *scheduleCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if c.applicationFile == "" {
		return errors.New("--application is required")
	}
	req := &api.ScheduleRequest{}
	if err := readJSONFile(c.applicationFile, &req.Application); err != nil {
		return err
	}
	if c.platformFile != "" {
		if err := readJSONFile(c.platformFile, &req.Platform); err != nil {
			return err
		}
	}

	schedule, err := cl.dial().Schedule(c.algorithm, req)
	if err != nil {
		return errors.Wrap(err, "scheduling failed")
	}
	return printSchedule(schedule)
}

func readJSONFile(path string, out interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

func printSchedule(schedule *domain.Schedule) error {
	b, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
