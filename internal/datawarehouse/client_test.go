package datawarehouse

import (
	"context"
	"net/url"
	"testing"

	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildConnectionString(t *testing.T) {
	cfg := &config.DataWarehouseConfig{
		URL:      "erp.internal:1444/warehouse",
		User:     "reader",
		Password: "p@ss word",
	}

	u, err := url.Parse(buildConnectionString(cfg))
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", u.Scheme)
	assert.Equal(t, "erp.internal:1444", u.Host)
	assert.Equal(t, "reader", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss word", pw)
	assert.Equal(t, "warehouse", u.Query().Get("database"))
}

func TestBuildConnectionString_DefaultPort(t *testing.T) {
	u, err := url.Parse(buildConnectionString(&config.DataWarehouseConfig{URL: "erp", User: "u", Password: "p"}))
	require.NoError(t, err)
	assert.Equal(t, "erp:1433", u.Host)
	assert.Empty(t, u.Query().Get("database"))
}

func TestNewClient_Disabled(t *testing.T) {
	logger := zap.NewNop()

	client, err := NewClient(&config.DataWarehouseConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewClient(&config.DataWarehouseConfig{Enabled: true, URL: "erp"}, logger)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_RejectsUnsafeTableName(t *testing.T) {
	_, err := NewClient(&config.DataWarehouseConfig{
		Enabled:       true,
		URL:           "erp",
		User:          "u",
		Password:      "p",
		CustomerTable: "customers; DROP TABLE x",
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestNilClient(t *testing.T) {
	var c *Client
	assert.False(t, c.IsEnabled())
	assert.Equal(t, "disabled", c.HealthCheck(context.Background()).Status)
	assert.NoError(t, c.Close())

	_, err := c.IsExistingCustomer(context.Background(), "ACME")
	assert.Error(t, err)
}
