// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/forumkit/forumkit/internal/auth"
	"github.com/forumkit/forumkit/internal/auth/memory"
	redisstore "github.com/forumkit/forumkit/internal/auth/redis"
	"github.com/forumkit/forumkit/internal/config"
	"github.com/forumkit/forumkit/internal/forum"
	forumpg "github.com/forumkit/forumkit/internal/forum/postgres"
	"github.com/forumkit/forumkit/internal/httpapi"
	"github.com/forumkit/forumkit/internal/logging"
	"github.com/forumkit/forumkit/internal/observability"
	"github.com/forumkit/forumkit/internal/store"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the forum API server",
		Long:  `Start the HTTP API server together with the observability endpoints.`,
		RunE:  runServe,
	}

	// Flags mirror the config file structure and override it.
	cmd.Flags().String("server.addr", "", "API listen address")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("session.backend", "", "session store backend (memory or redis)")
	cmd.Flags().String("session.redis_addr", "", "Redis address for the redis session backend")
	cmd.Flags().Duration("session.ttl", 0, "session lifetime")
	cmd.Flags().String("log.format", "", "log format (text or json)")
	cmd.Flags().String("log.level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("metrics.addr", "", "observability listen address")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("forumd", version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := forumpg.NewUserRepository(pool)
	postRepo := forumpg.NewPostRepository(pool)
	commentRepo := forumpg.NewCommentRepository(pool)
	hasher := auth.NewArgon2idHasher()

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(userRepo, hasher, sessions, cfg.Session.TTL)
	userSvc := forum.NewUserService(userRepo, hasher)
	postSvc := forum.NewPostService(postRepo, userRepo)
	commentSvc := forum.NewCommentService(commentRepo, postRepo, userRepo)

	obs := observability.NewServer(cfg.Metrics.Addr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})
	obsErrCh, err := obs.Start()
	if err != nil {
		return err
	}

	api := httpapi.NewAPI(userSvc, postSvc, commentSvc, authSvc, obs.Metrics(), slog.Default())
	srv := httpapi.NewServer(cfg.Server.Addr, api.Handler())
	apiErrCh, err := srv.Start()
	if err != nil {
		stopWithTimeout(obs.Stop)
		return err
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-apiErrCh:
		if err != nil {
			err = oops.With("component", "api").Wrap(err)
		}
	case err = <-obsErrCh:
		if err != nil {
			err = oops.With("component", "observability").Wrap(err)
		}
	}

	if stopErr := stopWithTimeout(srv.Stop); stopErr != nil && err == nil {
		err = stopErr
	}
	if stopErr := stopWithTimeout(obs.Stop); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

// newSessionStore selects the session backend. The memory backend gets
// a janitor goroutine that evicts expired sessions; Redis does its own
// eviction through TTLs.
func newSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, error) {
	switch cfg.Session.Backend {
	case "memory":
		s := memory.NewStore()
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := s.DeleteExpired(); n > 0 {
						slog.Debug("expired sessions evicted", "count", n)
					}
				}
			}
		}()
		return s, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.Session.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, oops.Code("REDIS_CONNECT_FAILED").
				With("addr", cfg.Session.RedisAddr).
				Wrap(err)
		}
		return redisstore.NewStore(client), nil
	default:
		return nil, oops.Code("CONFIG_INVALID").
			With("backend", cfg.Session.Backend).
			Errorf("unknown session backend")
	}
}

func stopWithTimeout(stop func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return stop(ctx)
}
