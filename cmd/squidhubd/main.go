package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/squidhub/pkg/env"
	"github.com/robotalks/squidhub/pkg/framework"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	env := env.NewConfig().MustNewEnv()
	err := framework.NewRunner().
		HandleSignals().
		Go(env.Runnables()...).
		Wait()
	if err != nil {
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
}
