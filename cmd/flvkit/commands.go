// If you are AI: This file declares the flvkit command tree and the options of each subcommand.

package main

import (
	"github.com/scott-cotton/cli"
)

// MainConfig is shared by every subcommand.
type MainConfig struct {
	Main *cli.Command
}

// DumpConfig holds dump options.
type DumpConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Debug      bool   `cli:"name=debug desc='log skipped and resynchronised tags'"`
	Color      bool   `cli:"name=color desc='colour metadata even when not on a terminal'"`
	NoColor    bool   `cli:"name=no-color desc='never colour metadata'"`
	Dump       *cli.Command
}

// InfoConfig holds info options.
type InfoConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	JSON       bool   `cli:"name=json desc='print JSON instead of text'"`
	Info       *cli.Command
}

// RemuxConfig holds remux options; set flags override the config file.
type RemuxConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Filter     string `cli:"name=filter desc='keep tags for which this expression is true'"`
	DropAudio  bool   `cli:"name=drop-audio desc='drop every audio tag'"`
	DropVideo  bool   `cli:"name=drop-video desc='drop every video tag'"`
	Creator    string `cli:"name=creator desc='stamp metadatacreator into onMetaData'"`
	Start      int    `cli:"name=start desc='start at the last keyframe at or before this many ms'"`
	Rebase     bool   `cli:"name=rebase desc='restart timestamps at zero'"`
	Remux      *cli.Command
}

// IndexConfig holds index options.
type IndexConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	List       bool   `cli:"name=list aliases=l desc='print every keyframe'"`
	Index      *cli.Command
}

// ServeConfig holds serve options; set flags override the config file.
type ServeConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Dir        string `cli:"name=dir desc='directory of served .flv files'"`
	Port       int    `cli:"name=port desc='port for API and replay endpoints'"`
	HealthPort int    `cli:"name=health-port desc='port for the health endpoint'"`
	NoIndex    bool   `cli:"name=no-index desc='disable ?start seeking'"`
	Gops       bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	Serve      *cli.Command
}

// MainCommand returns the root command.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	return cli.NewCommandAt(&cfg.Main, "flvkit").
		WithSynopsis("flvkit <command> [opts] [args]").
		WithDescription("flvkit reads, rewrites, indexes and serves FLV files.").
		WithSubs(
			DumpCommand(cfg),
			InfoCommand(cfg),
			RemuxCommand(cfg),
			IndexCommand(cfg),
			ServeCommand(cfg))
}

// DumpCommand returns the dump subcommand.
func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithSynopsis("dump [opts] file...").
		WithDescription("print every header, tag and trailing size; metadata is decoded").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exit(dump(cfg, cc, args))
		})
}

// InfoCommand returns the info subcommand.
func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithSynopsis("info [opts] file...").
		WithDescription("summarise header flags, tag counts and duration").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exit(info(cfg, cc, args))
		})
}

// RemuxCommand returns the remux subcommand.
func RemuxCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemuxConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Remux, "remux").
		WithSynopsis("remux [opts] in.flv out.flv").
		WithDescription("copy a container, filtering tags and rewriting metadata").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exit(remuxFile(cfg, cc, args))
		})
}

// IndexCommand returns the index subcommand.
func IndexCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IndexConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Index, "index").
		WithSynopsis("index [opts] file...").
		WithDescription("build the keyframe index used for seeking").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exit(indexFiles(cfg, cc, args))
		})
}

// ServeCommand returns the serve subcommand.
func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [opts]").
		WithDescription("serve a media directory over HTTP-FLV, WebSocket-FLV and a JSON API").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exit(serve(cfg, cc, args))
		})
}
