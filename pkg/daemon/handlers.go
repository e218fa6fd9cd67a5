package daemon

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/version"
)

func getState(c *gin.Context) {
	if err := loop.LastError(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	// A nil state means there is nothing to show (no battery).
	c.IndentedJSON(http.StatusOK, loop.CurrentState())
}

func getTelemetry(c *gin.Context) {
	if err := loop.LastError(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, loop.CurrentTelemetry())
}

func getIcon(c *gin.Context) {
	ic := loop.CurrentIcon()
	if ic == nil {
		c.Status(http.StatusNoContent)
		return
	}

	b, err := ic.PNG()
	if err != nil {
		logrus.Errorf("getIcon failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header("X-Icon-Template", strconv.FormatBool(ic.Template))
	c.Data(http.StatusOK, "image/png", b)
}

func getPreferences(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func setThresholds(c *gin.Context) {
	var t []int
	if err := c.BindJSON(&t); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	for _, pct := range t {
		if notify.KeyForPercentage(pct) == notify.KeyInvalid {
			err := fmt.Errorf("invalid threshold %d, valid thresholds are %v", pct, notify.Keys)
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			_ = c.AbortWithError(http.StatusBadRequest, err)
			return
		}
	}

	conf.SetThresholds(t)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set notification thresholds to %v", t)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set notification thresholds to %v", t))
}

func setPollInterval(c *gin.Context) {
	var s int
	if err := c.BindJSON(&s); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if s < 1 {
		err := fmt.Errorf("poll interval must be at least 1 second, got %d", s)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetPollIntervalSeconds(s)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set poll interval to %ds", s)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set poll interval to %ds", s))
}

func setLastNotified(c *gin.Context) {
	var k int
	if err := c.BindJSON(&k); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if k != 0 && notify.KeyForPercentage(k) == notify.KeyInvalid {
		err := fmt.Errorf("invalid threshold %d, valid thresholds are 0 (reset) or %v", k, notify.Keys)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetLastNotified(k)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set last notified threshold to %d", k)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func streamEvents(c *gin.Context) {
	ch := sseHub.Subscribe()
	defer sseHub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
