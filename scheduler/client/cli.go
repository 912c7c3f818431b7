package client

import (
	"github.com/spf13/cobra"
)

const defaultSchedulerAddr = "localhost:9091"

// Tempo client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// Implements CLIClient - basic
type simpleCLIClient struct {
	rootCmd *cobra.Command

	addr   string
	client *Client
}

func (c *simpleCLIClient) Exec() error {
	return c.rootCmd.Execute()
}

func NewSimpleCLIClient() (CLIClient, error) {
	c := &simpleCLIClient{}
	// c.addr is populated by flag

	c.rootCmd = &cobra.Command{
		Use:   "tempocl",
		Short: "tempocl is a command-line client to the tempo scheduler",
		Run:   func(*cobra.Command, []string) {},
	}

	c.addCmd(&scheduleCmd{})
	c.addCmd(&waitCmd{})

	return c, nil
}

func (c *simpleCLIClient) dial() *Client {
	if c.client == nil {
		if c.addr == "" {
			c.addr = defaultSchedulerAddr
		}
		c.client = NewClient(c.addr)
	}
	return c.client
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.Flags().StringVar(&c.addr, "addr", "", "tempo scheduler server address")
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}
