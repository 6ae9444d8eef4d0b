package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/nets"
	"github.com/reusee/tmplrun/templates"
)

const maxRemoteSize = 16 << 20

// Load reads a template or values document from a local path or an http(s) URL.
type Load func(ctx context.Context, location string) ([]byte, error)

func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

func (Module) Load(
	client nets.HTTPClient,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, location string) ([]byte, error) {
		if !IsRemote(location) {
			content, err := os.ReadFile(location)
			if err != nil {
				return nil, &templates.IoError{
					Path: location,
					Err:  err,
				}
			}
			return content, nil
		}

		logger.DebugContext(ctx, "fetch", "url", location)
		content, err := fetch(ctx, client, location)
		if err != nil {
			return nil, &templates.IoError{
				Path: location,
				Err:  err,
			}
		}
		return content, nil
	}
}

func fetch(ctx context.Context, client nets.HTTPClient, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxRemoteSize {
		return nil, fmt.Errorf("response exceeds %d bytes", maxRemoteSize)
	}
	return content, nil
}

type LoadTemplate func(ctx context.Context, location string) (*templates.Template, error)

func (Module) LoadTemplate(
	load Load,
) LoadTemplate {
	return func(ctx context.Context, location string) (*templates.Template, error) {
		content, err := load(ctx, location)
		if err != nil {
			return nil, err
		}
		return templates.FromBytes(location, content)
	}
}
