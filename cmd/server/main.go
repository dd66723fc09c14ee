package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	staticcontent "skyladder/internal/adapter/content/static"
	httpadapter "skyladder/internal/adapter/http"
	metricsinmem "skyladder/internal/adapter/metrics/inmemory"
	boltrepo "skyladder/internal/adapter/repo/bolt"
	gormrepo "skyladder/internal/adapter/repo/gorm"
	"skyladder/internal/adapter/repo/memory"
	"skyladder/internal/app/auth"
	"skyladder/internal/app/play"
	"skyladder/internal/app/ports"
	"skyladder/internal/app/replay"
	"skyladder/internal/app/status"
	"skyladder/internal/domain/ascent"
	"skyladder/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg, os.Stdout)

	repos, closeRepos, err := buildRepos(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", string(cfg.Backend())).Msg("build repositories")
	}
	defer closeRepos()

	content, err := loadContent(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ContentPath).Msg("load content")
	}
	seed := resolveSeed(cfg.RNGSeed)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: repos.Credentials,
			Saves:       repos.Saves,
			TxManager:   repos.Tx,
			Now:         time.Now,
		},
		AuthUC: auth.VerifyUseCase{Credentials: repos.Credentials},
		PlayUC: play.UseCase{
			TxManager:  repos.Tx,
			Runs:       repos.Runs,
			Saves:      repos.Saves,
			Events:     repos.Events,
			Executions: repos.Executions,
			Metrics:    kpiRecorder,
			Progression: ascent.ProgressionService{
				Dice:    newDice(seed),
				Content: content,
			},
			Log: log.With().Str("component", "play").Logger(),
			Now: time.Now,
		},
		StatusUC:    status.UseCase{Runs: repos.Runs, Saves: repos.Saves, Content: content},
		ReplayUC:    replay.UseCase{Events: repos.Events},
		KPI:         kpiRecorder,
		Intro:       content.Intro(),
		AllowOrigin: cfg.AllowOrigin,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("backend", string(cfg.Backend())).
		Uint64("rng_seed", seed).
		Msg("skyladder server listening")
	s.Spin()
}

func newLogger(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type repoSet struct {
	Tx          ports.TxManager
	Runs        ports.RunRepository
	Saves       ports.SaveRepository
	Events      ports.EventRepository
	Executions  ports.IntentExecutionRepository
	Credentials ports.ProfileCredentialRepository
}

func buildRepos(ctx context.Context, cfg Config, log zerolog.Logger) (repoSet, func(), error) {
	switch cfg.Backend() {
	case BackendPostgres:
		db, err := gormrepo.OpenPostgres(cfg.DSN, gormrepo.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return repoSet{}, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if cfg.AutoMigrate {
			applied, err := gormrepo.ApplyMigrations(ctx, db, migrationFS(cfg.MigrationsDir))
			if err != nil {
				closeFn()
				return repoSet{}, nil, fmt.Errorf("migrate: %w", err)
			}
			log.Info().Strs("applied", applied).Msg("migrations applied")
		}
		return repoSet{
			Tx:          gormrepo.NewTxManager(db),
			Runs:        gormrepo.NewRunRepo(db),
			Saves:       gormrepo.NewSaveRepo(db),
			Events:      gormrepo.NewEventRepo(db),
			Executions:  gormrepo.NewIntentExecutionRepo(db),
			Credentials: gormrepo.NewProfileCredentialRepo(db),
		}, closeFn, nil
	case BackendBolt:
		store, err := boltrepo.Open(cfg.SaveSlotPath)
		if err != nil {
			return repoSet{}, nil, err
		}
		return repoSet{
			Tx:          boltrepo.NewTxManager(store),
			Runs:        boltrepo.NewRunRepo(store),
			Saves:       boltrepo.NewSaveRepo(store),
			Events:      boltrepo.NewEventRepo(store),
			Executions:  boltrepo.NewIntentExecutionRepo(store),
			Credentials: boltrepo.NewProfileCredentialRepo(store),
		}, func() { _ = store.Close() }, nil
	default:
		log.Warn().Msg("no SKYLADDER_DB_DSN or SAVE_SLOT_PATH; progress is kept in memory only")
		store := memory.NewStore()
		return repoSet{
			Tx:          memory.NewTxManager(store),
			Runs:        memory.NewRunRepo(store),
			Saves:       memory.NewSaveRepo(store),
			Events:      memory.NewEventRepo(store),
			Executions:  memory.NewIntentExecutionRepo(store),
			Credentials: memory.NewProfileCredentialRepo(store),
		}, func() {}, nil
	}
}

func migrationFS(dir string) fs.FS {
	if dir == "" {
		return migrations.Files
	}
	return os.DirFS(dir)
}

func loadContent(path string) (staticcontent.Provider, error) {
	if path == "" {
		return staticcontent.Default(), nil
	}
	return staticcontent.LoadFile(path)
}

// resolveSeed keeps a configured seed so runs can be reproduced, and draws
// one from the OS otherwise.
func resolveSeed(configured uint64) uint64 {
	if configured != 0 {
		return configured
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// lockedDice serializes draws; the Postgres backend runs intents for
// different profiles concurrently.
type lockedDice struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newDice(seed uint64) *lockedDice {
	return &lockedDice{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *lockedDice) Float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Float64()
}

func (d *lockedDice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.IntN(n)
}
