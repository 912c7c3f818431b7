package client

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type waitCmd struct {
	timeout time.Duration
}

func (c *waitCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "wait",
		Short: "wait for the scheduler server to become healthy",
	}
	r.Flags().DurationVar(&c.timeout, "timeout", 30*time.Second, "how long to wait")
	return r
}

func (c *waitCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if err := cl.dial().WaitForHealthy(c.timeout); err != nil {
		return err
	}
	log.WithFields(log.Fields{"addr": cl.addr}).Info("Scheduler is healthy")
	return nil
}
