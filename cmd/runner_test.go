package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"
)

// newTestRunner returns a runner over a fresh in-memory database, writing to output.
func newTestRunner(t *testing.T, output io.Writer, prompt PasswordPrompt) (*Runner, *sql.DB) {
	t.Helper()
	t.Chdir(t.TempDir())

	config := shared.DefaultConfig()
	config.Auth.BcryptCost = bcrypt.MinCost
	db := tu.NewTestDB(t)

	return NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
		Prompt: prompt,
		DB:     db,
	}), db
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:      "watchlist",
		Commands:  r.register(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
	}
	return app.Run(context.Background(), append([]string{"watchlist"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "config.toml",
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.prompt == nil {
				t.Error("expected default password prompt")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "admin", "forge", "serve", "movies", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("explicit missing config", func(t *testing.T) {
		runner, _ := newTestRunner(t, io.Discard, nil)

		err := run(runner, "movies", "list", "--config", "missing.toml")
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner, _ := newTestRunner(t, output, nil)

		if err := run(runner, "setup"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, defaultConfigPath)
		if !strings.Contains(output.String(), "Initialized database.") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("drop clears data", func(t *testing.T) {
		runner, db := newTestRunner(t, io.Discard, nil)
		tu.InsertMovies(t, db, models.NewMovie("Arrival", "2016"))

		if err := run(runner, "setup", "--drop"); err != nil {
			t.Fatalf("setup --drop failed: %v", err)
		}

		if n := tu.CountRows(t, db, "movies"); n != 0 {
			t.Errorf("expected empty movies table, got %d rows", n)
		}
	})
}

func TestAdmin(t *testing.T) {
	t.Run("creates then updates", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner, db := newTestRunner(t, output, nil)

		if err := run(runner, "admin", "--username", "alice", "--password", "s3cret"); err != nil {
			t.Fatalf("admin failed: %v", err)
		}
		if err := run(runner, "admin", "--username", "bob", "--password", "hunter2"); err != nil {
			t.Fatalf("admin update failed: %v", err)
		}

		if n := tu.CountRows(t, db, "users"); n != 1 {
			t.Fatalf("expected exactly one identity, got %d", n)
		}

		identity, err := repositories.NewIdentityRepository(db).First(context.Background())
		if err != nil {
			t.Fatalf("failed to load identity: %v", err)
		}
		if identity.Username != "bob" {
			t.Errorf("expected username bob, got %s", identity.Username)
		}
		if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("hunter2")) != nil {
			t.Error("expected password to be updated")
		}

		out := output.String()
		if !strings.Contains(out, "Creating user...") || !strings.Contains(out, "Updating user...") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("prompts for password", func(t *testing.T) {
		var labels []string
		prompt := func(label string) (string, error) {
			labels = append(labels, label)
			return "s3cret", nil
		}
		runner, db := newTestRunner(t, io.Discard, prompt)

		if err := run(runner, "admin", "--username", "alice"); err != nil {
			t.Fatalf("admin failed: %v", err)
		}
		if len(labels) != 2 {
			t.Errorf("expected password and confirmation prompts, got %v", labels)
		}
		if n := tu.CountRows(t, db, "users"); n != 1 {
			t.Errorf("expected identity to be created, got %d rows", n)
		}
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		answers := []string{"s3cret", "typo"}
		prompt := func(string) (string, error) {
			answer := answers[0]
			answers = answers[1:]
			return answer, nil
		}
		runner, db := newTestRunner(t, io.Discard, prompt)

		err := run(runner, "admin", "--username", "alice")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if n := tu.CountRows(t, db, "users"); n != 0 {
			t.Errorf("expected no identity, got %d rows", n)
		}
	})
}

func TestForgeAndMovies(t *testing.T) {
	output := &bytes.Buffer{}
	runner, db := newTestRunner(t, output, nil)

	if err := run(runner, "admin", "--username", "alice", "--password", "s3cret"); err != nil {
		t.Fatalf("admin failed: %v", err)
	}
	if err := run(runner, "forge", "--name", "Grey"); err != nil {
		t.Fatalf("forge failed: %v", err)
	}

	if n := tu.CountRows(t, db, "movies"); n != 10 {
		t.Fatalf("expected 10 sample movies, got %d", n)
	}

	t.Run("list", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "movies", "list"); err != nil {
			t.Fatalf("movies list failed: %v", err)
		}

		out := output.String()
		for _, want := range []string{"Grey", "My Neighbor Totoro (1988)", "10 Titles"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %q", want, out)
			}
		}
	})

	t.Run("list json", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "movies", "list", "--json"); err != nil {
			t.Fatalf("movies list --json failed: %v", err)
		}

		var movies []models.Movie
		if err := json.Unmarshal(output.Bytes(), &movies); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(movies) != 10 || movies[0].Title != "My Neighbor Totoro" {
			t.Errorf("unexpected movies %+v", movies)
		}
	})

	t.Run("export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.md")
		if err := run(runner, "movies", "export", "--format", "md", "--output", path); err != nil {
			t.Fatalf("movies export failed: %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "# Grey") || !strings.Contains(content, "WALL-E (2008)") {
			t.Errorf("unexpected export %q", content)
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		err := run(runner, "movies", "export", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestServe(t *testing.T) {
	runner, _ := newTestRunner(t, io.Discard, nil)
	runner.config.Server.ShutdownTimeout = 5

	app, err := runner.webApp()
	if err != nil {
		t.Fatalf("webApp failed: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.serve(ctx, &http.Server{Handler: app.Handler()}, ln, false)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("unexpected health response %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
