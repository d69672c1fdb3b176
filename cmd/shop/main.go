package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pankaj1920/shop/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/shop/config.yaml)")
	productID := flag.Int("product", 0, "product whose comments are shown (optional, defaults to the last one)")
	initConfig := flag.Bool("init-config", false, "write the effective config file and exit")
	setToken := flag.Bool("set-token", false, "read the API token from stdin, store it in the system keyring and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		ProductID:  *productID,
		InitConfig: *initConfig,
		SetToken:   *setToken,
		TokenInput: os.Stdin,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "shop: %v\n", err)
		return 1
	}
	return 0
}
