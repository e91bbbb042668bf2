package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/openshift/dedicated-admin-operator/cmd/gen-csv/root"
	"github.com/openshift/dedicated-admin-operator/pkg/lib/vcs"
)

func main() {
	source := vcs.NewGitSource(logrus.WithField("component", "git"))
	if err := root.NewCmd(source, clock.RealClock{}).Execute(); err != nil {
		os.Exit(1)
	}
}
