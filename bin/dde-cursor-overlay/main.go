// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/linuxdeepin/dde-cursor-overlay/cursoroverlay"
	"github.com/linuxdeepin/dde-cursor-overlay/loader"
	_ "github.com/linuxdeepin/dde-cursor-overlay/pointermonitor"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/dde-cursor-overlay")

var (
	optVerbose = flag.Bool("verbose", false, "enable debug logging")
	optConfig  = flag.String("config", "", "config file location")
)

func main() {
	flag.Parse()

	if *optVerbose {
		logger.SetLogLevel(log.LevelDebug)
		loader.SetLogLevel(log.LevelDebug)
	}
	cursoroverlay.SetConfigFile(*optConfig)

	service, err := dbusutil.NewSessionService()
	if err != nil {
		logger.Fatal("failed to new session service:", err)
	}
	loader.SetService(service)

	if err := loader.StartAll(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	go commandLoop()
	service.Wait()
}

// commandLoop reads commands from stdin until exit or EOF. Toggle goes
// through the synchronous engine hand-off, so the reply is printed only
// after the switch has fully been applied.
func commandLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "":
		case "toggle":
			mode, _ := cursoroverlay.GetManager().Toggle()
			fmt.Println("cursor mode:", mode)
		case "exit":
			quit()
		default:
			fmt.Println("commands: toggle, exit")
		}
	}
	quit()
}

func quit() {
	loader.StopAll()
	os.Exit(0)
}
