package initializers

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func InitLogger() {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(Config.LogLevel)
	if err != nil {
		Log.Warnf("unknown LOG_LEVEL %q, defaulting to info", Config.LogLevel)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if gin.Mode() == gin.ReleaseMode {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
