package app

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/pankaj1920/shop/internal/credential"
	"github.com/pankaj1920/shop/internal/interactor"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/shopapi"
	"github.com/pankaj1920/shop/internal/store"
)

// localUser is the author recorded for comments written offline.
const localUser = "You"

// newRepository picks the data source for the interactors: the remote API
// when a base URL is configured, the local store otherwise. The returned
// label describes the choice for the UI.
func newRepository(cfg *model.AppConfig, s store.Store) (interactor.Repository, string, error) {
	if cfg.Offline() {
		return interactor.NewLocalRepository(s, localUser), "local store", nil
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Host == "" {
		return nil, "", fmt.Errorf("invalid api.base_url %q", cfg.API.BaseURL)
	}

	token, err := credential.APIToken()
	if err != nil {
		// Anonymous access may still work; the API answers 401 otherwise.
		log.Printf("loading API token: %v", err)
	}

	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	return shopapi.NewClient(cfg.API.BaseURL, token, timeout), u.Host, nil
}
