package nets

import (
	"context"
	"net"
	"net/url"
	"os"
	"sync"

	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/modes"
	"golang.org/x/net/proxy"
)

// ProxyAddr is the proxy url for remote templates, empty for direct
// connections.
type ProxyAddr string

var proxyFlag = cmds.Var[string]("-proxy", "proxy url for remote templates")

// consulted in order after the flag and the config
var proxyEnvs = []string{
	"ALL_PROXY", "all_proxy",
	"HTTPS_PROXY", "https_proxy",
	"HTTP_PROXY", "http_proxy",
}

func (Module) ProxyAddr(
	mode modes.Mode,
	loader configs.Loader,
	logger logs.Logger,
) ProxyAddr {
	if mode == modes.ModeDevelopment {
		return ""
	}
	addr, from := lookupProxyAddr(*proxyFlag, configs.Lookup[string](loader, logger, "proxy_addr"), os.Getenv)
	if addr != "" {
		logger.Info("proxy", "addr", addr, "from", from)
	}
	return ProxyAddr(addr)
}

func lookupProxyAddr(flag string, config string, getenv func(string) string) (addr string, from string) {
	if flag != "" {
		return flag, "flag"
	}
	if config != "" {
		return config, "config"
	}
	for _, key := range proxyEnvs {
		if v := getenv(key); v != "" {
			return v, key
		}
	}
	return "", ""
}

type GetProxyURL func() (*url.URL, error)

func (Module) GetProxyURL(
	proxyAddr ProxyAddr,
) GetProxyURL {
	return sync.OnceValues(func() (*url.URL, error) {
		if proxyAddr == "" {
			return nil, nil
		}
		u, err := url.Parse(string(proxyAddr))
		if err != nil {
			return nil, err
		}
		if u.Scheme == "socks" {
			u.Scheme = "socks5"
		}
		return u, nil
	})
}

// GetProxyDialer returns a plain dialer when no proxy is configured.
type GetProxyDialer func() (Dialer, error)

func (Module) GetProxyDialer(
	getURL GetProxyURL,
) GetProxyDialer {
	return sync.OnceValues(func() (Dialer, error) {
		direct := new(net.Dialer)
		u, err := getURL()
		if err != nil {
			return nil, err
		}
		if u == nil {
			return direct, nil
		}
		d, err := proxy.FromURL(u, direct)
		if err != nil {
			return nil, err
		}
		ctxDialer, ok := d.(Dialer)
		if !ok {
			return DialerFunc(func(_ context.Context, network, addr string) (net.Conn, error) {
				return d.Dial(network, addr)
			}), nil
		}
		return ctxDialer, nil
	})
}
