package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file format.
// Durations are accepted as strings ("15m") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		BaseURL  string `json:"base_url"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		AccessTokenTTL  Duration `json:"access_token_ttl"`
		RefreshTokenTTL Duration `json:"refresh_token_ttl"`
		ConfirmTokenTTL Duration `json:"confirm_token_ttl"`
		BcryptCost      int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		S3 struct {
			Endpoint        string `json:"endpoint"`
			Region          string `json:"region"`
			Bucket          string `json:"bucket"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			PublicURL       string `json:"public_url"`
		} `json:"s3,omitempty"`
	} `json:"storage,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
		FromName string `json:"from_name"`
	} `json:"mail,omitempty"`

	RateLimit struct {
		RedisAddr     string   `json:"redis_addr"`
		RedisPassword string   `json:"redis_password"`
		RedisDB       int      `json:"redis_db"`
		Requests      int      `json:"requests"`
		Window        Duration `json:"window"`
	} `json:"rate_limit,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		MailQueueSize   int      `json:"mail_queue_size"`
		MailWorkers     int      `json:"mail_workers"`
		MailSendTimeout Duration `json:"mail_send_timeout"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			BaseURL:  jsonCfg.App.BaseURL,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			TokenSignKey:    jsonCfg.Auth.TokenSignKey,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:  time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL: time.Duration(jsonCfg.Auth.RefreshTokenTTL),
			ConfirmTokenTTL: time.Duration(jsonCfg.Auth.ConfirmTokenTTL),
			BcryptCost:      jsonCfg.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			S3: S3{
				Endpoint:        jsonCfg.Storage.S3.Endpoint,
				Region:          jsonCfg.Storage.S3.Region,
				Bucket:          jsonCfg.Storage.S3.Bucket,
				AccessKeyID:     jsonCfg.Storage.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.S3.SecretAccessKey,
				PublicURL:       jsonCfg.Storage.S3.PublicURL,
			},
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
			FromName: jsonCfg.Mail.FromName,
		},
		RateLimit: RateLimit{
			RedisAddr:     jsonCfg.RateLimit.RedisAddr,
			RedisPassword: jsonCfg.RateLimit.RedisPassword,
			RedisDB:       jsonCfg.RateLimit.RedisDB,
			Requests:      jsonCfg.RateLimit.Requests,
			Window:        time.Duration(jsonCfg.RateLimit.Window),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			MailQueueSize:   jsonCfg.Workers.MailQueueSize,
			MailWorkers:     jsonCfg.Workers.MailWorkers,
			MailSendTimeout: time.Duration(jsonCfg.Workers.MailSendTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
