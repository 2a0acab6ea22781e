package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/amqp"
	"github.com/paulvitic/members-admin/config"
	"github.com/paulvitic/members-admin/http"
	"github.com/paulvitic/members-admin/inMemory"
	"github.com/paulvitic/members-admin/source"
	"github.com/paulvitic/members-admin/table"
	"golang.org/x/sync/errgroup"
)

type args struct {
	Profile    string `arg:"--profile,env:MEMBERS_PROFILE" help:"configuration profile, reads properties.<profile>.json"`
	Host       string `arg:"--host" help:"listen host"`
	Port       int    `arg:"--port" help:"listen port"`
	SourceURL  string `arg:"--source-url" help:"load members from this URL"`
	SourceFile string `arg:"--source-file" help:"load members from this JSON file"`
	PageSize   int    `arg:"--page-size" help:"rows per page"`
	Debug      bool   `arg:"--debug" help:"log debug entries"`
}

func (args) Description() string {
	return "members-admin serves an administrative table of members over HTTP."
}

// apply lets command line flags win over the properties file.
func (a args) apply(cfg *config.Application) {
	if a.Host != "" {
		cfg.Host = a.Host
	}
	if a.Port != 0 {
		cfg.Port = a.Port
	}
	if a.PageSize != 0 {
		cfg.PageSize = a.PageSize
	}
	if a.SourceURL != "" {
		cfg.Source.Kind = config.SourceHTTP
		cfg.Source.URL = a.SourceURL
	}
	if a.SourceFile != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.File = a.SourceFile
	}
	cfg.Debug = cfg.Debug || a.Debug
}

func main() {
	var a args
	arg.MustParse(&a)

	logger := admin.NewLogger("members-admin")
	if err := run(a, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func loadConfig(a args, logger *admin.Logger) (*config.Application, error) {
	cfg, err := config.Load(a.Profile)
	if errors.Is(err, config.ErrNotFound) && a.Profile == "" {
		logger.Warn("no properties file found, using defaults")
		defaults := config.Defaults()
		cfg, err = &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	a.apply(cfg)
	return cfg, cfg.Validate()
}

func run(a args, logger *admin.Logger) error {
	cfg, err := loadConfig(a, logger)
	if err != nil {
		return err
	}
	logger.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := source.New(ctx, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(context.Background()); err != nil {
			logger.Warn("closing source: %v", err)
		}
	}()

	journal := inMemory.NewEventLog(inMemory.DefaultEventLogCapacity)
	publisher, consumer, err := newPublisher(cfg.Publisher, journal, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("closing publisher: %v", err)
		}
	}()

	metrics := admin.NewMetrics("members_admin")
	controller := table.NewController(src, logger,
		table.WithPageSize(cfg.PageSize),
		table.WithLocale(cfg.Language()),
		table.WithPublisher(publisher),
		table.WithRegisterer(metrics.Registerer()),
		table.WithLoadTimeout(cfg.LoadTimeout()),
		table.WithRetries(cfg.Source.Retries, cfg.RetryDelay()),
	)

	commands := admin.NewCommandBus(logger)
	commands.Use(admin.LoggerMiddleware(logger), metrics.Middleware())
	queries := admin.NewQueryBus(logger)
	queries.Use(metrics.Middleware())
	if err = commands.Subscribe(controller.Commands()); err != nil {
		return err
	}
	if err = queries.Subscribe(controller.Queries()); err != nil {
		return err
	}

	endpoints := http.MembersEndpoints(http.Buses{Commands: commands, Queries: queries, Logger: logger})
	endpoints = append(endpoints, http.NewEventsEndpoint(journal, logger))
	server := admin.NewServer(admin.ServerConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout(),
	}, logger).WithMetrics(metrics).WithEndpoints(endpoints...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background())
	})
	g.Go(func() error {
		if err := commands.Dispatch(ctx, admin.NewCommand(table.Reload{})); err != nil {
			logger.Warn("initial load: %v", err)
		}
		return nil
	})
	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(ctx)
		})
	}
	return g.Wait()
}

// newPublisher wires the configured publisher so every event also ends up in journal.
func newPublisher(cfg config.Publisher, journal *inMemory.EventLog, logger *admin.Logger) (admin.EventPublisher, *inMemory.MessageConsumer, error) {
	switch cfg.Kind {
	case config.PublisherMemory:
		queue := inMemory.NewEventPublisher(cfg.BufferSize)
		return queue, inMemory.NewMessageConsumer(queue.Queue(), journal.ProcessMessage, logger), nil
	case config.PublisherAMQP:
		broker, err := amqp.NewEventPublisher(cfg.AMQP, logger)
		if err != nil {
			return nil, nil, err
		}
		return admin.NewPublisherGroup(journal, broker), nil, nil
	default:
		return journal, nil, nil
	}
}
