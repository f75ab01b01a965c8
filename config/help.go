package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `fareline - ride price comparison service

Usage:
  fareline [flags]

Flags:
  -config string   path to the yaml config file (default "config.yaml")
  -help            print this message
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
