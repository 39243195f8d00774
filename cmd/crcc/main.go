package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/blobstore"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/resultcache"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/search"
)

type Provider struct {
	config Config
	runID  uuid.UUID
	preset crc.Preset

	store   blobstore.Store
	results *resultcache.Cache

	stdin  io.Reader
	stdout io.Writer
}

func (p *Provider) init(ctx context.Context) error {
	var err error
	p.preset, err = resolvePreset(p.config.Preset, p.stdin, p.stdout)
	if err != nil {
		return err
	}
	log.Printf("using %s %s", p.preset.Name, p.preset.Params)

	switch p.config.Store {
	case StoreRedis:
		var client redis.UniversalClient
		if p.config.RedisCluster {
			client = redis.NewClusterClient(&redis.ClusterOptions{
				Addrs: []string{p.config.RedisAddress},
			})
		} else {
			client = redis.NewClient(&redis.Options{
				Addr: p.config.RedisAddress,
			})
		}
		log.Printf("redis: connecting to %s", p.config.RedisAddress)
		p.store, err = blobstore.NewRedisStore(ctx, client,
			p.config.RedisPrefix, p.config.RedisWait)
		if err != nil {
			client.Close()
			return err
		}
	default:
		p.store, err = blobstore.NewFileStore(p.config.Dir)
		if err != nil {
			return err
		}
	}

	opts := []search.Option{
		search.WithWorkers(p.config.Workers),
	}
	if p.config.Ambiguity {
		opts = append(opts, search.WithAmbiguityCheck())
	}
	p.results = resultcache.NewCache(p.config.CacheTTL, p.config.CacheTTL, opts...)

	return nil
}

func (p *Provider) close() error {
	var errOut error
	if p.results != nil {
		p.results.Close()
	}
	if p.store != nil {
		err := p.store.Close()
		if err != nil {
			errOut = multierror.Append(errOut, err)
		}
	}
	return errOut
}

func run(ctx context.Context, config Config, stdin io.Reader, stdout io.Writer) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var err error
	provider := &Provider{
		config: config,
		runID:  uuid.New(),
		stdin:  stdin,
		stdout: stdout,
	}
	log.Printf("starting crcc %s run %s", config.Mode, provider.runID)

	err = provider.init(ctx)
	if err != nil {
		return err
	}
	defer provider.close()

	switch config.Mode {
	case ModeCompress:
		return provider.compress(ctx)
	case ModeDecompress:
		return provider.decompress(ctx)
	}

	err = provider.compress(ctx)
	if err != nil {
		return err
	}
	return provider.decompress(ctx)
}

func main() {
	var err error
	ctx, cancelFunc := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		s, ok := <-sigChan
		if ok {
			log.Printf("received signal %s", s.String())
		}
		cancelFunc()
	}()

	log.SetFlags(log.Lshortfile | log.LstdFlags)
	config, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	err = run(ctx, config, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}
