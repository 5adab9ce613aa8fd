// Copyright (c) 2024, 0x0BSoD. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/errorWatcher/internal/bot"
	"github.com/0x0BSoD/errorWatcher/internal/bot/middleware"
	"github.com/0x0BSoD/errorWatcher/internal/botkit"
	"github.com/0x0BSoD/errorWatcher/internal/config"
	"github.com/0x0BSoD/errorWatcher/internal/format"
	"github.com/0x0BSoD/errorWatcher/internal/httpapi"
	"github.com/0x0BSoD/errorWatcher/internal/model"
	"github.com/0x0BSoD/errorWatcher/internal/notifier"
	"github.com/0x0BSoD/errorWatcher/internal/stats"
)

func main() {
	botAPI, err := tgbotapi.NewBotAPI(config.Get().TelegramBotToken)
	if err != nil {
		log.Printf("[ERROR] failed to create botAPI: %v", err)
		return
	}

	// Dispatch gets its own API handle with a bounded HTTP client so a
	// hung send cannot hold a request handler past the timeout. The
	// polling handle above keeps the default client, long polling needs
	// requests longer than the dispatch timeout.
	dispatchAPI, err := tgbotapi.NewBotAPIWithClient(
		config.Get().TelegramBotToken,
		tgbotapi.APIEndpoint,
		&http.Client{Timeout: config.Get().DispatchTimeout},
	)
	if err != nil {
		log.Printf("[ERROR] failed to create dispatch botAPI: %v", err)
		return
	}

	var (
		labels     = model.LabelsWithOverrides(config.Get().PlatformLabels)
		tracker    = stats.New()
		formatter  = format.New(labels)
		dispatcher = notifier.NewTelegram(dispatchAPI, config.Get().TelegramAdminChatID)
	)

	handler := httpapi.NewHandler(formatter, dispatcher, tracker, config.Get().ServiceName)

	errorBot := botkit.New(botAPI)
	errorBot.RegisterCmdView(
		"start",
		middleware.AdminOnly(
			config.Get().TelegramAdminChatID,
			bot.ViewCmdStart(labels),
		),
	)
	errorBot.RegisterCmdView(
		"status",
		middleware.AdminOnly(
			config.Get().TelegramAdminChatID,
			bot.ViewCmdStatus(tracker, config.Get().ListenAddr),
		),
	)
	errorBot.RegisterCmdView(
		"help",
		middleware.AdminOnly(
			config.Get().TelegramAdminChatID,
			bot.ViewCmdHelp(),
		),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:    config.Get().ListenAddr,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		log.Printf("[INFO] http server listening on %s", config.Get().ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] failed to run http server: %v", err)
		}
	}()

	go func(ctx context.Context) {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] failed to shutdown http server: %v", err)
		}
	}(ctx)

	if err := errorBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] failed to run botkit: %v", err)
			return
		}

		log.Printf("[INFO] bot stopped")
	}
}
