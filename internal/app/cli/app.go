package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/melodica-app/melodica/internal/app/config"
	"github.com/melodica-app/melodica/internal/auth"
	"github.com/melodica-app/melodica/internal/logging"
	"github.com/melodica-app/melodica/internal/models"
	"github.com/melodica-app/melodica/internal/repositories/users"
	"github.com/melodica-app/melodica/internal/session"
	"github.com/melodica-app/melodica/internal/storage"
)

// App is the interactive account console. It owns the database handle and
// the signed-in user, if any.
type App struct {
	config  *config.Config
	auth    auth.Service
	session *session.Store
	db      *sql.DB
	user    *models.User
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp opens the configured database, runs migrations and wires the
// repositories and services together.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	repo := users.NewSQLiteRepository(db)
	sess := session.NewStore(db)
	svc := auth.NewService(repo, sess, log)

	app := &App{
		config:  cfg,
		auth:    svc,
		session: sess,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}

	sess.Subscribe(func(ev session.Event) {
		log.Info(context.Background(), "session event", "event", ev.String())
	})

	return app, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Username)
}

// Run resumes any persisted session and enters the command loop. It blocks
// until the user exits or stdin is closed. Commands and prompt answers go
// through the same buffered reader, so piped scripts are consumed in order.
func (a *App) Run(ctx context.Context) error {
	user, err := a.auth.ResumeSession(ctx)
	if err != nil {
		return err
	}
	a.user = user
	if a.user != nil {
		fmt.Printf("Welcome back, %s!\n", a.user.Username)
	}

	fmt.Println("Melodica account console (type 'help' for commands)")

	for {
		fmt.Printf("melodica %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if parts := strings.Fields(line); len(parts) > 0 {
			if quit := a.dispatch(ctx, parts[0]); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// dispatch executes a single command; true means the loop should exit.
func (a *App) dispatch(ctx context.Context, cmd string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Println("Available commands: profile, email, username, passwd, image, logout, exit")
		} else {
			fmt.Println("Available commands: register, login, reset, exit")
		}
	case "register":
		a.register(ctx)
	case "login":
		a.login(ctx)
	case "reset":
		a.resetPassword(ctx)
	case "logout":
		a.logout(ctx)
	case "profile":
		a.showProfile(ctx)
	case "email":
		a.editEmail(ctx)
	case "username":
		a.editUsername(ctx)
	case "passwd":
		a.changePassword(ctx)
	case "image":
		a.pickImage(ctx)
	case "exit", "quit":
		fmt.Println("Bye!")
		return true
	default:
		fmt.Println("Unknown command:", cmd)
	}
	return false
}
