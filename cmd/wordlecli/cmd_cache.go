package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"crosswarped.com/wordlecalc/pkg/cache"
	"crosswarped.com/wordlecalc/pkg/config"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/storage/badger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// openStore opens only the persistent cache, without loading word lists.
func openStore() (*badger.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	if cfg.Cache.Disabled || cfg.Cache.InMemory {
		return nil, cfg, errors.New("the cache is not persistent in this configuration")
	}
	bcfg := badger.DefaultConfig(cfg.Cache.Dir)
	bcfg.Logger = slog.Default()
	s, err := badger.Open(bcfg)
	return s, cfg, err
}

func runCacheInvalidate(cmd *cobra.Command, args []string) error {
	h, err := primitives.ParseHistoryKey(args[0])
	if err != nil {
		return err
	}
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c := cache.New(s, cache.WithNamespace(cfg.Cache.Namespace), cache.WithLogger(slog.Default()))
	if _, ok := c.Get(cmd.Context(), h); !ok {
		fmt.Println("Not cached:", h.Key())
		return nil
	}
	if err := c.Invalidate(cmd.Context(), h); err != nil {
		return err
	}
	fmt.Println("Removed:", h.Key())
	return nil
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	prefix := cachePrefix
	if cfg.Cache.Namespace != "" {
		prefix = cfg.Cache.Namespace + "|" + prefix
	}
	keys, err := s.Keys(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		v, ok, err := s.Get(cmd.Context(), k)
		if err != nil || !ok {
			continue
		}
		fmt.Printf("%s -> %s\n", k, v)
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func runConfigInit(_ *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Write(args[0], config.Default()); err != nil {
		return err
	}
	fmt.Println("Wrote", args[0])
	return nil
}
