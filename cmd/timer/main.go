// Package main is a terminal timer driving the focus/break countdown
// against a running Kpom API. Completed focus sessions are posted to
// the session endpoint with the configured bearer token.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kpom/kpom/internal/model"
	"github.com/kpom/kpom/internal/timer"
)

func main() {
	var (
		apiURL   = flag.String("api-url", "http://localhost:8080", "Kpom API base URL")
		token    = flag.String("token", os.Getenv("KPOM_TOKEN"), "Bearer token (or KPOM_TOKEN)")
		email    = flag.String("email", "", "Log in with this email instead of a token")
		password = flag.String("password", os.Getenv("KPOM_PASSWORD"), "Password for -email (or KPOM_PASSWORD)")
		methodID = flag.String("method", model.MethodPomodoro, "Study method: pomodoro, 52-17 or 90-20")
	)
	flag.Parse()

	preset, ok := model.MethodPresets[*methodID]
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown method:", *methodID)
		os.Exit(1)
	}

	if *token == "" && *email != "" {
		t, err := login(*apiURL, *email, *password)
		if err != nil {
			fmt.Fprintln(os.Stderr, "login:", err)
			os.Exit(1)
		}
		*token = t
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "a token (-token / KPOM_TOKEN) or -email is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	recorder := timer.NewHTTPRecorder(*apiURL, *token)
	ctrl := timer.NewController(preset, recorder, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	fmt.Printf("%s  focus %dm / break %dm\n", preset.Name, preset.FocusMinutes, preset.BreakMinutes)
	fmt.Println("commands: s=start/pause  b=break  f=focus  m <method>  q=quit")

	go renderLoop(ctx, ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "s":
			ctrl.StartPause()
		case line == "b":
			ctrl.SwitchPhase(timer.PhaseBreak)
		case line == "f":
			ctrl.SwitchPhase(timer.PhaseFocus)
		case strings.HasPrefix(line, "m "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "m "))
			if p, ok := model.MethodPresets[id]; ok {
				ctrl.SwitchMethod(p)
			} else {
				fmt.Println("\nunknown method:", id)
			}
		case line == "q":
			return
		}
	}
}

func renderLoop(ctx context.Context, ctrl *timer.Controller) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := ctrl.State()
			state := "paused"
			if s.Running {
				state = "running"
			}
			fmt.Printf("\r[%s] %-7s %02d:%02d  ", s.Phase, state,
				s.RemainingSeconds/60, s.RemainingSeconds%60)
		}
	}
}

// login exchanges credentials for a bearer token.
func login(apiURL, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(apiURL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Token, nil
}
