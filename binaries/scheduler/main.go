package main

import (
	"flag"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tempodev/tempo/common/endpoints"
	"github.com/tempodev/tempo/common/log/hooks"
	"github.com/tempodev/tempo/scheduler/api"
	"github.com/tempodev/tempo/scheduler/config"
	"github.com/tempodev/tempo/scheduler/server"
)

var addr = flag.String("addr", "", "Bind address for the api + admin server, overrides config.")
var configFile = flag.String("sched_config", "", "Path to the scheduler json config.")
var logLevelFlag = flag.String("log_level", "", "Log everything at this level and above (error|info|debug), overrides config.")

func main() {
	log.AddHook(hooks.NewContextHook())
	flag.Parse()

	var cfgText []byte
	if *configFile != "" {
		var err error
		if cfgText, err = ioutil.ReadFile(*configFile); err != nil {
			log.Fatal("Error reading scheduler config: ", err)
		}
	}
	cfg, err := config.Parse(cfgText)
	if err != nil {
		log.Fatal("Error parsing scheduler config: ", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level: ", err)
	}
	log.SetLevel(level)

	log.Info("Starting Tempo Scheduler Server")
	stat := endpoints.MakeStatsReceiver("scheduler")

	mux := http.NewServeMux()
	handler := api.NewHandler(server.NewScheduler(stat.Scope("server")), stat.Scope("api"), cfg.Limiter())
	handler.Register(mux)

	err = endpoints.NewServer(cfg.Addr, stat, mux).Serve()
	if err != nil {
		log.Fatal("Error serving scheduler api: ", err)
	}
}
