package projectlog

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/config"
)

func Init() {
	logrus.SetFormatter(&JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(config.GetInstance().GetString(config.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(level >= logrus.DebugLevel)
}
