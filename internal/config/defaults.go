package config

import "time"

const (
	defaultTokenIssuer     = "go-contact-book"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultConfirmTokenTTL = 24 * time.Hour
	defaultBcryptCost      = 10
)

// defaultConfig returns the lowest-priority configuration layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  "dev",
			BaseURL:  "http://localhost:8080",
			LogLevel: "debug",
		},
		Auth: Auth{
			TokenIssuer:     defaultTokenIssuer,
			AccessTokenTTL:  defaultAccessTokenTTL,
			RefreshTokenTTL: defaultRefreshTokenTTL,
			ConfirmTokenTTL: defaultConfirmTokenTTL,
			BcryptCost:      defaultBcryptCost,
		},
		Storage: Storage{
			S3: S3{
				Region: "us-east-1",
				Bucket: "avatars",
			},
		},
		Mail: Mail{
			Port:     587,
			FromName: "Contact Book",
		},
		RateLimit: RateLimit{
			Requests: 2,
			Window:   5 * time.Second,
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			MailQueueSize:   100,
			MailWorkers:     2,
			MailSendTimeout: 30 * time.Second,
		},
	}
}
