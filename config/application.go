package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulvitic/members-admin/amqp"
	"golang.org/x/text/language"
)

const DefaultSourceURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

const (
	SourceHTTP  = "http"
	SourceFile  = "file"
	SourceMongo = "mongo"

	PublisherNone   = "none"
	PublisherMemory = "memory"
	PublisherAMQP   = "amqp"
)

// Application is the configuration of the members-admin service.
type Application struct {
	Host                   string    `json:"host"`
	Port                   int       `json:"port"`
	PageSize               int       `json:"pageSize"`
	Locale                 string    `json:"locale"`
	Debug                  bool      `json:"debug"`
	ShutdownTimeoutSeconds int       `json:"shutdownTimeoutSeconds"`
	Source                 Source    `json:"source"`
	Publisher              Publisher `json:"publisher"`
}

type Source struct {
	Kind             string `json:"kind"`
	URL              string `json:"url"`
	File             string `json:"file"`
	TimeoutSeconds   int    `json:"timeoutSeconds"`
	Retries          int    `json:"retries"`
	RetryDelayMillis int    `json:"retryDelayMillis"`
	Mongo            Mongo  `json:"mongo"`
}

type Mongo struct {
	URI        string `json:"uri"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

type Publisher struct {
	Kind       string             `json:"kind"`
	BufferSize int                `json:"bufferSize"`
	AMQP       amqp.Configuration `json:"amqp"`
}

func Defaults() Application {
	return Application{
		Port:                   8080,
		PageSize:               10,
		Locale:                 "en",
		ShutdownTimeoutSeconds: 5,
		Source: Source{
			Kind:             SourceHTTP,
			URL:              DefaultSourceURL,
			TimeoutSeconds:   10,
			Retries:          2,
			RetryDelayMillis: 500,
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "admin_ui",
				Collection: "members",
			},
		},
		Publisher: Publisher{
			Kind:       PublisherMemory,
			BufferSize: 64,
		},
	}
}

// Load reads the profile's properties over the defaults and validates the result.
func Load(profile string) (*Application, error) {
	return LoadIn(".", profile)
}

func LoadIn(dir, profile string) (*Application, error) {
	app := Defaults()
	if err := decodeInto(&app, dir, profile); err != nil {
		return nil, err
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (a Application) Validate() error {
	var errs []error
	if a.Port < 1 || a.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", a.Port))
	}
	if a.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", a.PageSize))
	}
	if _, err := language.Parse(a.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", a.Locale, err))
	}
	switch a.Source.Kind {
	case SourceHTTP:
		if a.Source.URL == "" {
			errs = append(errs, errors.New("http source needs a url"))
		}
	case SourceFile:
		if a.Source.File == "" {
			errs = append(errs, errors.New("file source needs a file"))
		}
	case SourceMongo:
		if a.Source.Mongo.URI == "" || a.Source.Mongo.Collection == "" {
			errs = append(errs, errors.New("mongo source needs a uri and a collection"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source kind %q", a.Source.Kind))
	}
	switch a.Publisher.Kind {
	case PublisherNone, PublisherMemory:
	case PublisherAMQP:
		if a.Publisher.AMQP.Exchange == "" {
			errs = append(errs, errors.New("amqp publisher needs an exchange"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown publisher kind %q", a.Publisher.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (a Application) Language() language.Tag {
	tag, err := language.Parse(a.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func (a Application) LoadTimeout() time.Duration {
	return time.Duration(a.Source.TimeoutSeconds) * time.Second
}

func (a Application) RetryDelay() time.Duration {
	return time.Duration(a.Source.RetryDelayMillis) * time.Millisecond
}

func (a Application) ShutdownTimeout() time.Duration {
	return time.Duration(a.ShutdownTimeoutSeconds) * time.Second
}
