package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/api"
	"lockstep-arena/config"
	"lockstep-arena/pkg/log4gox"
	"lockstep-arena/server"
	"lockstep-arena/util"
)

var (
	configFile = flag.String("config", "", "xml config file (defaults when empty)")
	webAddr    = flag.String("web", "", "web listen address (websocket + status api)")
	kcpAddr    = flag.String("kcp", "", "kcp listen address (':10086' means $localip:10086)")
	debugLog   = flag.Bool("log", true, "debug log")
)

func loadConfig() config.Config {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			panic(fmt.Sprintf("[main] load config %v fail: %v", *configFile, err))
		}
	}

	if *webAddr != "" {
		cfg.WebAddress = *webAddr
	}
	if *kcpAddr != "" {
		cfg.KCPAddress = *kcpAddr
	}

	temp := strings.Split(cfg.KCPAddress, ":")
	if 0 == len(temp[0]) {
		cfg.KCPAddress = util.GetOutboundIP().String() + cfg.KCPAddress
	}

	return cfg
}

func main() {

	showIP := false
	flag.BoolVar(&showIP, "ip", false, "show ip info")
	flag.Parse()
	if showIP {
		fmt.Println("GetOutboundIP", util.GetOutboundIP())
		fmt.Println("GetLocalIP", util.GetLocalIP())
		fmt.Println("GetExternalIP", util.GetExternalIP())
		os.Exit(0)
	}

	l4g.Close()
	level := l4g.INFO
	if *debugLog {
		level = l4g.DEBUG
	}
	l4g.AddFilter("console", level, log4gox.NewColorConsoleLogWriter())

	defer func() {
		time.Sleep(time.Millisecond * 100)
		l4g.Warn("[main] quit")
		l4g.Global.Close()
	}()

	cfg := loadConfig()

	s := server.New(cfg)
	if err := s.Start(); err != nil {
		panic(err)
	}
	defer s.Stop()

	http.Handle("/ws", s.WebSocketHandler())
	_ = api.NewWebAPI(cfg.WebAddress, s.Rooms(), s.Registry())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)

	l4g.Warn("[main] running...")
QUIT:
	for {
		sig := <-sigs
		l4g.Info("Signal: %s", sig.String())
		if sig != syscall.SIGHUP {
			break QUIT
		}
	}

	l4g.Info("[main] quiting...")
}
