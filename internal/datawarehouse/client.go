// Package datawarehouse provides read-only access to the ERP data warehouse on
// MS SQL Server. The inquiry API uses it to decide whether the client of a new
// inquiry is already a known customer.
package datawarehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/salestrack/inquiry-api/internal/config"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// Client is a pooled read-only connection to the warehouse. A nil *Client is
// valid and behaves as a disabled warehouse.
type Client struct {
	db            *sql.DB
	logger        *zap.Logger
	queryTimeout  time.Duration
	customerTable string
}

// HealthStatus represents the health check result for the data warehouse connection
type HealthStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
	Open      int    `json:"open_connections"`
	InUse     int    `json:"in_use"`
	Idle      int    `json:"idle"`
}

// NewClient connects to the warehouse with retry and backoff.
// Returns nil, nil when the warehouse is disabled or not configured.
func NewClient(cfg *config.DataWarehouseConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Data warehouse connection disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Data warehouse enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	if !tableNamePattern.MatchString(cfg.CustomerTable) {
		return nil, fmt.Errorf("invalid customer table name %q", cfg.CustomerTable)
	}

	connStr := buildConnectionString(cfg)

	var db *sql.DB
	var err error
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

			ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				logger.Info("Data warehouse connection established",
					zap.Int("attempts_taken", attempt),
					zap.String("customer_table", cfg.CustomerTable),
				)
				return &Client{
					db:            db,
					logger:        logger,
					queryTimeout:  cfg.QueryTimeoutDuration(),
					customerTable: cfg.CustomerTable,
				}, nil
			}
			_ = db.Close()
		}

		logger.Warn("Data warehouse connection attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)
		if attempt < defaultMaxRetries {
			time.Sleep(backoff)
			backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
		}
	}

	return nil, fmt.Errorf("failed to connect to data warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString turns host:port/database into a sqlserver:// URL
func buildConnectionString(cfg *config.DataWarehouseConfig) string {
	hostPort, database, _ := strings.Cut(cfg.URL, "/")
	host, port, found := strings.Cut(hostPort, ":")
	if !found {
		port = "1433"
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	query.Add("app name", "inquiry-api")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// IsExistingCustomer reports whether the ERP knows a customer with the given
// name. Names are compared trimmed and case-insensitively.
func (c *Client) IsExistingCustomer(ctx context.Context, name string) (bool, error) {
	if !c.IsEnabled() {
		return false, fmt.Errorf("data warehouse client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	query := fmt.Sprintf(
		"SELECT TOP 1 1 FROM %s WHERE UPPER(LTRIM(RTRIM(name))) = UPPER(@p1)",
		c.customerTable,
	)

	start := time.Now()
	var found int
	err := c.db.QueryRowContext(ctx, query, name).Scan(&found)
	switch {
	case err == sql.ErrNoRows:
		found = 0
	case err != nil:
		c.logger.Error("Customer lookup failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return false, fmt.Errorf("customer lookup failed: %w", err)
	}

	c.logger.Debug("Customer lookup completed",
		zap.Bool("found", found == 1),
		zap.Duration("duration", time.Since(start)),
	)
	return found == 1, nil
}

// HealthCheck pings the warehouse and reports pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if !c.IsEnabled() {
		return &HealthStatus{Status: "disabled"}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.db.PingContext(ctx)
	stats := c.db.Stats()

	status := &HealthStatus{
		Status:    "healthy",
		LatencyMs: time.Since(start).Milliseconds(),
		Open:      stats.OpenConnections,
		InUse:     stats.InUse,
		Idle:      stats.Idle,
	}
	if err != nil {
		c.logger.Warn("Data warehouse health check failed", zap.Error(err))
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	return status
}

// Close gracefully closes the data warehouse connection.
func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close data warehouse connection: %w", err)
	}
	c.logger.Info("Data warehouse connection closed")
	return nil
}
