package nets

import (
	"net/http"
	"time"

	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/vars"
)

type HTTPClient = *http.Client

type HTTPTimeout time.Duration

var httpTimeoutFlag = cmds.Var[string]("-http-timeout", "timeout of remote template fetches, like 30s")

func (Module) HTTPTimeout(
	loader configs.Loader,
	logger logs.Logger,
) HTTPTimeout {
	str := vars.FirstNonZero(
		*httpTimeoutFlag,
		configs.Lookup[string](loader, logger, "http_timeout"),
	)
	if str == "" {
		return HTTPTimeout(30 * time.Second)
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		logger.Warn("bad http timeout, using default", "value", str, "error", err)
		return HTTPTimeout(30 * time.Second)
	}
	return HTTPTimeout(d)
}

func (Module) HTTPClient(
	dialer Dialer,
	timeout HTTPTimeout,
) HTTPClient {
	return &http.Client{
		Timeout: time.Duration(timeout),
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
