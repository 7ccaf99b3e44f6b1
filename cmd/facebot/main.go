package main

import (
	"context"
	"log"

	"github.com/kaodiag/facebot/bot/conversation"
	"github.com/kaodiag/facebot/bot/dispatch"
	"github.com/kaodiag/facebot/bot/session"
	"github.com/kaodiag/facebot/core/cmd"
	coreconfig "github.com/kaodiag/facebot/core/config"
	"github.com/kaodiag/facebot/core/line"
	"github.com/kaodiag/facebot/core/line/sender"
	"github.com/kaodiag/facebot/core/metrics"
)

type app struct {
	server *line.Server
	sender *sender.Dispatcher
}

func (a *app) Run(ctx context.Context) error { return a.server.Run(ctx) }

func (a *app) Close() {
	if a.sender != nil {
		a.sender.Close()
	}
}

func bootstrap(cfg *coreconfig.Config) (cmd.App, error) {
	metrics.Init()

	outbound := sender.NewDispatcher(sender.Options{})
	gateway, err := line.NewGateway(cfg.Line.ChannelToken, outbound)
	if err != nil {
		outbound.Close()
		return nil, err
	}

	store := session.NewMemoryStore()
	ctrl := conversation.New(store, cfg.Bot.PromoURL)
	dispatcher := dispatch.NewDispatcher(ctrl, gateway, cfg.Bot.TriggerPhrase)

	return &app{
		server: line.NewServer(cfg, dispatcher),
		sender: outbound,
	}, nil
}

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		Bootstrap:         bootstrap,
	})
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
