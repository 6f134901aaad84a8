package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The client used for fetching remote resources.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Resource wraps a streamable scene file, material library or sidecar that
// lives either on the local filesystem or behind an http(s) URL.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file name of this resource without its directory.
func (r *Resource) Name() string {
	return filepath.Base(r.url.Path)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource that lives next to this one.
func (r *Resource) Sibling(name string) (*Resource, error) {
	return NewResource(name, r)
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, the path to the new Resource is generated by
// joining the directory of relTo with pathToResource.
//
// The caller must close the returned Resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	// Windows-style material paths are common in exported obj files
	target, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if target.Scheme == "" && relTo != nil && !filepath.IsAbs(target.Path) {
		relPath := target.Path
		target, _ = url.Parse(relTo.url.String())
		prefix := target.Path
		if target.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.String())
			if err != nil {
				return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
			}
		}
		target.Path = filepath.Dir(prefix) + "/" + relPath
	}

	var reader io.ReadCloser
	switch target.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(target.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := httpClient.Get(target.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", target.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", target.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", target.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        target,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	target, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        target,
	}
}

// Fetch the whole contents of a resource.
func ReadResource(pathToResource string, relTo *Resource) ([]byte, error) {
	res, err := NewResource(pathToResource, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return io.ReadAll(res)
}
