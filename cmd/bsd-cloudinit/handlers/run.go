package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metrics"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/plugins"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/userdata"
)

// RunOptions are the flags of the run command.
type RunOptions struct {
	ConfigPath string
	UserData   string
}

// Run handles the run command.
//
// Directive failures are logged and counted but do not fail the command;
// only configuration, user-data and document errors do.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.UserData != "" {
		cfg.UserData = opts.UserData
	}

	log, flush, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer flush()
	log = log.WithValues("run_id", newRunID())

	rec := metrics.NewRecorder()
	defer func() {
		if cfg.MetricsTextfile == "" {
			return
		}
		if err := rec.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Error(err, "writing metrics failed", "path", cfg.MetricsTextfile)
		}
	}()

	svc := discoverMetadata(ctx, cfg, log, rec)

	src, err := userdata.Open(ctx, cfg.UserData, svc, userdata.Options{
		NewS3: func(ctx context.Context) (userdata.S3API, error) {
			return newS3Client(ctx, cfg.S3)
		},
		Retry: cfg.Retry.Options(),
	})
	if err != nil {
		return fmt.Errorf("failed to open user data: %w", err)
	}
	data, err := userdata.Read(ctx, src)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		log.Info("no user data, nothing to do")
		rec.FinishRun(time.Now(), nil)
		return nil
	}

	directives, err := cloudconfig.ParseDocument(bytes.NewReader(data))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(directives))
	for _, d := range directives {
		names = append(names, d.Name)
	}
	tools := checkPrerequisites(names)
	if err := tools.Error(); err != nil {
		return err
	}
	for _, tool := range tools.Missing {
		log.Info("optional tool not found", "tool", tool.Name, "purpose", tool.Purpose)
	}

	sys := newSystem(log)
	registry, err := plugins.NewRegistry(plugins.Deps{
		Config:   cfg,
		Accounts: sys,
		Hostname: sys,
		Metadata: svc,
	})
	if err != nil {
		return fmt.Errorf("failed to build directive registry: %w", err)
	}

	session := cloudconfig.NewSession()
	defer session.Destroy()

	executor := cloudconfig.NewExecutor(directives, cfg.CloudConfigPlugins, registry, cloudconfig.WithRecorder(rec))
	results := executor.Execute(cloudconfig.NewContext(ctx, session, log))
	rec.FinishRun(time.Now(), results)

	counts := make(map[cloudconfig.Outcome]int)
	for _, r := range results {
		counts[r.Outcome]++
	}
	log.Info("cloud-config processed",
		"directives", len(results),
		"done", counts[cloudconfig.OutcomeDone],
		"unsupported", counts[cloudconfig.OutcomeUnsupported],
		"failed", counts[cloudconfig.OutcomeFailed],
	)
	return nil
}
