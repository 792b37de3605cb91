// Command gdrive-auth runs the OAuth consent flow once and prints the refresh
// token the gdrive share provider needs (GDRIVE_REFRESH_TOKEN).
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/share"
)

func main() {
	log := logger.New(logger.Config{Level: "info", Format: "text", Output: os.Stderr})

	token, err := run(context.Background(), os.Getenv("GDRIVE_CLIENT_ID"), os.Getenv("GDRIVE_CLIENT_SECRET"), 3*time.Minute)
	if err != nil {
		log.LogFatal("authorization failed", err)
	}
	fmt.Println("\nREFRESH TOKEN:")
	fmt.Println(token)
}

func run(ctx context.Context, clientID, clientSecret string, wait time.Duration) (string, error) {
	clientID, clientSecret = strings.TrimSpace(clientID), strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return "", errors.New("GDRIVE_CLIENT_ID and GDRIVE_CLIENT_SECRET are required")
	}

	// Local callback on a free port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer ln.Close()

	redirectURL := fmt.Sprintf("http://127.0.0.1:%d/callback", ln.Addr().(*net.TCPAddr).Port)
	conf := share.OAuthConfig(clientID, clientSecret, redirectURL)
	state := randomState()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(state, codeCh, errCh))
	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	// Offline access plus forced consent so a refresh token is issued.
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Println("Open this URL in your browser:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("Waiting for authorization on", redirectURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return "", err
	case <-time.After(wait):
		return "", errors.New("timed out waiting for authorization")
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if strings.TrimSpace(tok.RefreshToken) == "" {
		return "", errors.New("no refresh token returned; revoke the app at https://myaccount.google.com/permissions and retry")
	}
	return tok.RefreshToken, nil
}

func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var err error
		switch {
		case q.Get("state") != state:
			err = errors.New("invalid state")
		case q.Get("error") != "":
			err = fmt.Errorf("auth error: %s", q.Get("error"))
		case q.Get("code") == "":
			err = errors.New("missing code")
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			select {
			case errCh <- err:
			default:
			}
			return
		}

		fmt.Fprintln(w, "OK. You can close this window and return to the terminal.")
		select {
		case codeCh <- q.Get("code"):
		default:
		}
	}
}

func randomState() string {
	b := make([]byte, 18)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
