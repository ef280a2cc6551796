package main

import (
	"os"

	"github.com/glowgo/scheduler/schedulerservice"
)

func main() {
	if err := schedulerservice.Run(); err != nil {
		os.Exit(1)
	}
}
