package config

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const defaultCalendarScope = "https://www.googleapis.com/auth/calendar"

// googleCredentials mirrors the "web" application blob exported by the
// Google Cloud console.
type googleCredentials struct {
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		AuthURI      string `json:"auth_uri"`
		TokenURI     string `json:"token_uri"`
	} `json:"web"`
}

// googleToken mirrors a stored token obtained from a prior consent flow.
type googleToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// GetGoogleOAuth returns the OAuth2 client descriptor and the stored token
// for the calendar provider. Both come from JSON blobs in the environment
// and are required; a missing or malformed blob fails startup.
func GetGoogleOAuth() (*oauth2.Config, *oauth2.Token) {
	rawCreds := GetEnvOrDefault("GOOGLE_CREDENTIALS", "")
	if rawCreds == "" {
		log.Fatal().Msg("GOOGLE_CREDENTIALS environment variable not set")
	}

	rawToken := GetEnvOrDefault("GOOGLE_TOKEN", "")
	if rawToken == "" {
		log.Fatal().Msg("GOOGLE_TOKEN environment variable not set")
	}

	var creds googleCredentials
	if err := json.Unmarshal([]byte(rawCreds), &creds); err != nil {
		log.Fatal().Err(err).Msg("GOOGLE_CREDENTIALS is not valid JSON")
	}

	var token googleToken
	if err := json.Unmarshal([]byte(rawToken), &token); err != nil {
		log.Fatal().Err(err).Msg("GOOGLE_TOKEN is not valid JSON")
	}

	scope := token.Scope
	if scope == "" {
		scope = defaultCalendarScope
	}

	conf := &oauth2.Config{
		ClientID:     creds.Web.ClientID,
		ClientSecret: creds.Web.ClientSecret,
		Scopes:       []string{scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  creds.Web.AuthURI,
			TokenURL: creds.Web.TokenURI,
		},
	}

	return conf, &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
}
