package influxdb

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/influxdata/influxdb/client/v2"
	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/utils"
)

const reportInterval = 5 * time.Second

// ConnectTimeout bounds the retries of NewClient to reach the server
var ConnectTimeout = 30 * time.Second

// Client writes application metrics to influxdb. Without INFLUXDB_ADDR and
// INFLUXDB_DB it is a stub logging the metrics through utils.Debug.
type Client struct {
	isStub bool

	appName        string
	database       string
	influxdbClient client.Client
	tickerChannel  *time.Ticker
}

func createHttpClient(addr string) (client.Client, error) {
	return client.NewHTTPClient(client.HTTPConfig{
		Addr: addr,
	})
}

func NewClient(appName string) (*Client, error) {
	return NewClientWithConfig(appName, os.Getenv("INFLUXDB_ADDR"), os.Getenv("INFLUXDB_DB"))
}

func NewClientWithConfig(appName, addr, db string) (*Client, error) {
	stubClient := &Client{
		isStub:        true,
		appName:       appName,
		tickerChannel: time.NewTicker(reportInterval),
	}

	if addr == "" && db == "" {
		utils.Debug("influxdb", "No client has been configured")
		return stubClient, nil
	}

	influxdbClient, err := createHttpClient(addr)
	if err != nil {
		return stubClient, errors.Wrapf(err, "Could not create influxdb client (%s)", addr)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = ConnectTimeout

	err = backoff.Retry(func() error {
		_, _, err := influxdbClient.Ping(time.Second)
		return err
	}, policy)

	if err != nil {
		influxdbClient.Close()
		return stubClient, errors.Wrapf(err, "Could not reach influxdb (%s)", addr)
	}

	utils.Debug("influxdb", "Influxdb reporting is enabled")

	return &Client{
		appName:        appName,
		database:       db,
		influxdbClient: influxdbClient,
		tickerChannel:  stubClient.tickerChannel,
	}, nil
}

func (c *Client) IsStub() bool {
	return c.isStub
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}

	return strings.Join(parts, " ")
}

func (c *Client) WriteAppMetric(name string, fields map[string]interface{}) error {
	if c.isStub {
		utils.Debug("influxdb-debug", name+" "+formatFields(fields))
		return nil
	}

	batchpoints, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database: c.database,
	})
	if err != nil {
		return errors.Wrap(err, "Could not create batch points")
	}

	tags := map[string]string{"app": c.appName}

	pt, err := client.NewPoint(name, tags, fields, time.Now())
	if err != nil {
		return errors.Wrapf(err, "Could not create point %s", name)
	}

	batchpoints.AddPoint(pt)

	return errors.Wrap(c.influxdbClient.Write(batchpoints), "Could not write metrics")
}

// Loop calls fn on every report tick until TearDown
func (c *Client) Loop(fn func()) {
	go func() {
		for range c.tickerChannel.C {
			fn()
		}
	}()
}

func (c *Client) TearDown() {
	c.tickerChannel.Stop()

	if c.influxdbClient != nil {
		c.influxdbClient.Close()
	}
}
