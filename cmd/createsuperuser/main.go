// Command createsuperuser registers an account with staff and superuser
// rights against the configured store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/recipe-api/internal/app"
	"github.com/iliyamo/recipe-api/internal/config"
	"github.com/iliyamo/recipe-api/internal/queue"
	"github.com/iliyamo/recipe-api/internal/service"
)

func main() {
	email := flag.String("email", "", "email address of the new superuser")
	password := flag.String("password", "", "password of the new superuser")
	flag.Parse()

	if err := run(*email, *password); err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBDriver == "memory" {
		return errors.New("DB_DRIVER=memory keeps nothing after exit; point it at mysql")
	}
	log := app.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	accounts := service.NewAccountService(store.Users, queue.NopPublisher{}, service.PasswordPolicy{
		MinLength:  cfg.PasswordMinLen,
		BcryptCost: cfg.BcryptCost,
	}, log)
	u, err := accounts.CreateSuperuser(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("superuser %s created (id=%d)\n", u.Email, u.ID)
	return nil
}
