package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-base-url public base URL used in confirmation links
//	-log-level zerolog level name
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-ttl access token lifetime (e.g. "15m")
//	-refresh-token-ttl refresh token lifetime (e.g. "168h")
//	-confirm-token-ttl email confirmation token lifetime (e.g. "24h")
//	-bcrypt-cost bcrypt work factor
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-redis-addr redis address for the rate limiter
//	-smtp-host SMTP server host
//	-smtp-port SMTP server port
//	-s3-endpoint S3 endpoint override
//	-s3-bucket S3 bucket for avatars
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress   NetAddress
		databaseDSN     string
		jsonConfigPath  string
		baseURL         string
		logLevel        string
		tokenSignKey    string
		tokenIssuer     string
		accessTokenTTL  time.Duration
		refreshTokenTTL time.Duration
		confirmTokenTTL time.Duration
		bcryptCost      int
		requestTimeout  time.Duration
		redisAddr       string
		smtpHost        string
		smtpPort        int
		s3Endpoint      string
		s3Bucket        string
	)

	fs := flag.NewFlagSet("contact-book", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTokenTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 168h)")
	fs.DurationVar(&confirmTokenTTL, "confirm-token-ttl", 0, "Email confirmation token lifetime (e.g., 24h)")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&redisAddr, "redis-addr", "", "Redis address for rate limiting")
	fs.StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	fs.IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	fs.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 endpoint")
	fs.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			BaseURL:  baseURL,
			LogLevel: logLevel,
		},
		Auth: Auth{
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
			ConfirmTokenTTL: confirmTokenTTL,
			BcryptCost:      bcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			S3: S3{
				Endpoint: s3Endpoint,
				Bucket:   s3Bucket,
			},
		},
		Mail: Mail{
			Host: smtpHost,
			Port: smtpPort,
		},
		RateLimit: RateLimit{
			RedisAddr: redisAddr,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
