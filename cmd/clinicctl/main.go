// clinicctl is a small command line front door to the clinical
// records services: it logs in, inspects the current session and drives
// the same session subsystem the web client embeds.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Git-Commit-Therapy/sancommitto-client/authclient"
	"github.com/Git-Commit-Therapy/sancommitto-client/connection"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/internal/config"
	"github.com/Git-Commit-Therapy/sancommitto-client/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("clinicctl failed")
	}
}

func run(args []string) error {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c := config.New()

	repo, err := credentialsRepo(c)
	if err != nil {
		return err
	}
	store := credentials.NewStore(repo)
	factory := connection.NewFactory(store, endpoints(c))
	sess := session.New(store, factory, session.WithRefreshInterval(c.GetRefreshInterval()))

	if err := sess.Init(c.GetAuthURL()); err != nil {
		return err
	}

	if len(args) == 0 {
		usage(c.GetAppName())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		return login(ctx, sess, args[1:])
	case "signup":
		return signup(ctx, sess, args[1:])
	case "whoami":
		return whoami(sess)
	case "refresh":
		return refresh(ctx, sess)
	case "logout":
		sess.Logout()
		fmt.Println("logged out")
		return nil
	default:
		usage(c.GetAppName())
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func login(ctx context.Context, sess *session.Service, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: clinicctl login <fiscal-code> <password>")
	}
	ok, err := sess.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("login rejected: invalid credentials")
		return nil
	}
	fmt.Println("login succeeded")
	return whoami(sess)
}

func signup(ctx context.Context, sess *session.Service, args []string) error {
	if len(args) != 7 {
		return fmt.Errorf("usage: clinicctl signup <fiscal-code> <name> <surname> <date-of-birth> <phone> <email> <password>")
	}
	dob, err := time.Parse("2006-01-02", args[3])
	if err != nil {
		return fmt.Errorf("date of birth must be YYYY-MM-DD: %w", err)
	}
	ok, err := sess.SignUp(ctx, authclient.Profile{
		FiscalCode:  args[0],
		Name:        args[1],
		Surname:     args[2],
		DateOfBirth: dob,
		PhoneNumber: args[4],
		Email:       args[5],
		Password:    args[6],
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("signup rejected")
		return nil
	}
	fmt.Println("signup succeeded, you can now log in")
	return nil
}

func refresh(ctx context.Context, sess *session.Service) error {
	ok, err := sess.RefreshNow(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("nothing to refresh, log in first")
		return nil
	}
	fmt.Println("tokens refreshed")
	return whoami(sess)
}

func whoami(sess *session.Service) error {
	if !sess.IsAuthenticated() {
		fmt.Println("not authenticated")
		return nil
	}
	roles := make([]string, 0)
	for _, r := range sess.Roles() {
		roles = append(roles, string(r))
	}
	fmt.Printf("authenticated, roles: [%s]\n", strings.Join(roles, ", "))
	return nil
}

func credentialsRepo(c config.Config) (credentials.Repo, error) {
	if key := c.GetCredentialsKey(); key != nil {
		return credentials.NewEncryptedFileRepo(c.GetCredentialsFile(), key)
	}
	return credentials.NewFileRepo(c.GetCredentialsFile()), nil
}

func endpoints(c config.Config) connection.EndpointResolver {
	return func(service connection.Service) string {
		switch service {
		case connection.ServiceAuth:
			return c.GetAuthURL()
		case connection.ServicePatients:
			return c.GetPatientsURL()
		case connection.ServiceEmployees, connection.ServiceEmergencyWard, connection.ServiceEmergencyWardPanel:
			return c.GetEmployeesURL()
		default:
			return ""
		}
	}
}

func usage(appName string) {
	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()
	fmt.Println("usage: clinicctl <login|signup|whoami|refresh|logout>")
}
