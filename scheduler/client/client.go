// Package client provides the http client and the cli for talking to a
// tempo scheduler server.
package client

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/tempodev/tempo/scheduler/api"
	"github.com/tempodev/tempo/scheduler/domain"
)

// Algorithm names accepted on the wire and by the cli, mapped to api routes.
var algorithmPaths = map[string]string{
	"ldf_single_node": api.LdfSingleNodePath,
	"edf_single_node": api.EdfSingleNodePath,
	"edf_multi_node":  api.EdfMultiNodePath,
	"ldf_multi_node":  api.LdfMultiNodePath,
	"ll_multi_node":   api.LlMultiNodePath,
}

const DefaultHttpTries = 3

// MakePesterClient returns the retrying http client used for all server
// traffic.
func MakePesterClient() *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = DefaultHttpTries
	client.LogHook = func(e pester.ErrEntry) {
		log.WithFields(log.Fields{"attempt": e.Attempt, "err": e.Err}).Info("Retrying http request")
	}
	return client
}

// Client talks to one scheduler server.
type Client struct {
	addr       string
	httpClient *pester.Client
}

func NewClient(addr string) *Client {
	return &Client{addr: addr, httpClient: MakePesterClient()}
}

// Schedule posts a scheduling request for the named algorithm and returns
// the resulting plan. Server-side scheduling failures are returned with the
// structured error body's message.
func (c *Client) Schedule(algorithm string, req *api.ScheduleRequest) (*domain.Schedule, error) {
	path, ok := algorithmPaths[algorithm]
	if !ok {
		return nil, errors.Errorf("unknown algorithm %q, expected one of %v", algorithm, AlgorithmNames())
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "serializing schedule request")
	}

	resp, err := c.httpClient.Post("http://"+c.addr+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "posting to %s", path)
	}
	defer resp.Body.Close()
	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode != http.StatusOK {
		errResp := &api.ErrorResponse{}
		if err := json.Unmarshal(respBody, errResp); err != nil || errResp.Error == "" {
			return nil, errors.Errorf("server returned status %d: %s", resp.StatusCode, respBody)
		}
		return nil, errors.Errorf("%s (kind:%s, request:%s)", errResp.Error, errResp.Kind, errResp.RequestID)
	}
	return domain.DeserializeSchedule(respBody)
}

// WaitForHealthy polls the server's health endpoint with exponential
// backoff until it answers or the timeout elapses.
func (c *Client) WaitForHealthy(timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = timeout
	return backoff.Retry(func() error {
		resp, err := c.httpClient.Get("http://" + c.addr + "/health")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errors.Errorf("health returned status %d", resp.StatusCode)
		}
		return nil
	}, b)
}

// AlgorithmNames lists the supported algorithm identifiers, sorted.
func AlgorithmNames() []string {
	return []string{"edf_multi_node", "edf_single_node", "ldf_multi_node", "ldf_single_node", "ll_multi_node"}
}
