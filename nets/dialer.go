package nets

import (
	"context"
	"net"

	"github.com/reusee/tmplrun/logs"
)

type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Dialer connects local addresses directly and everything else through the
// configured proxy, if any.
func (Module) Dialer(
	getProxyDialer GetProxyDialer,
	isLocalAddr IsLocalAddr,
	logger logs.Logger,
) Dialer {
	var direct net.Dialer
	return DialerFunc(func(ctx context.Context, network, addr string) (ret net.Conn, err error) {
		if isLocal, err := isLocalAddr(addr); err != nil {
			return nil, err
		} else if isLocal {
			logger.DebugContext(ctx, "direct dial", "addr", addr)
			return direct.DialContext(ctx, network, addr)
		}
		proxyDialer, err := getProxyDialer()
		if err != nil {
			return nil, err
		}
		return proxyDialer.DialContext(ctx, network, addr)
	})
}

type DialerFunc func(context.Context, string, string) (net.Conn, error)

var _ Dialer = DialerFunc(nil)

func (d DialerFunc) DialContext(ctx context.Context, network string, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

func (d DialerFunc) Dial(network string, addr string) (net.Conn, error) {
	return d(context.Background(), network, addr)
}
