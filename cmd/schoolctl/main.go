package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth"
	authdomain "github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification"
	notifdomain "github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room"
	roomapp "github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/application"
	roomdomain "github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/apiclient"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/config"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/validation"
)

const usageText = `Usage: schoolctl <command> [flags]

Commands:
  login          Sign in and store the session token
  logout         Sign out and clear the session token
  signup         Create an account
  forgot-password    Send a password reset email
  reset-password     Confirm a password reset with an oob code
  resend-verification  Resend the email verification mail
  whoami         Show the current role and view
  notifications  list | create | read | read-all | delete | unread | watch
  rooms          list | get | create | update | delete | types
`

type app struct {
	cfg           config.Config
	auth          *auth.Module
	notifications *notification.Module
	rooms         *room.Module
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg := config.Load()

	tokens, err := localstore.NewFileStore(cfg.State.Dir)
	if err != nil {
		log.Fatalf("Failed to open state dir %s: %v", cfg.State.Dir, err)
	}

	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, tokens)
	notifAPI := apiclient.New(cfg.Notifications.BaseURL, cfg.API.Timeout, tokens)

	a := &app{
		cfg:           cfg,
		auth:          auth.NewModule(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.API.Timeout, tokens),
		notifications: notification.NewModule(notifAPI, cfg.Notifications.PollInterval),
		rooms:         room.NewModule(api),
	}

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	switch command {
	case "login":
		err = a.login(ctx, args)
	case "logout":
		err = a.logout()
	case "signup":
		err = a.signup(ctx, args)
	case "forgot-password":
		err = a.forgotPassword(ctx, args)
	case "reset-password":
		err = a.resetPassword(ctx, args)
	case "resend-verification":
		err = a.resendVerification(ctx)
	case "whoami":
		err = a.whoami()
	case "notifications":
		err = a.notificationsCmd(ctx, args)
	case "rooms":
		err = a.roomsCmd(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usageText)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if msg := validation.ValidateEmail(*email); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if *password == "" {
		return fmt.Errorf("Password is required")
	}

	session, err := a.auth.Sessions().SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("Connecté en tant que %s (%s)\n", session.Nom, session.Email)
	if !session.Verified {
		fmt.Println("Votre email n'est pas encore vérifié.")
	}
	return nil
}

func (a *app) logout() error {
	if err := a.auth.Sessions().SignOut(); err != nil {
		return err
	}
	fmt.Println("Déconnecté.")
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	nom := fs.String("nom", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	form := validation.SignupForm{
		Nom:                    *nom,
		Email:                  *email,
		MotDePasse:             *password,
		ConfirmationMotDePasse: *confirm,
	}
	if errs := validation.ValidateSignupForm(form); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid signup form")
	}

	session, err := a.auth.Sessions().SignUp(ctx, *nom, *email, *password)
	if session != nil {
		fmt.Printf("Compte créé pour %s (%s)\n", session.Nom, session.Email)
	}
	if err != nil {
		return err
	}
	fmt.Println("Un email de vérification vous a été envoyé.")
	return nil
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	if msg := validation.ValidateEmail(*email); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if err := a.auth.Sessions().RequestPasswordReset(ctx, *email); err != nil {
		return err
	}
	fmt.Println("Un email de réinitialisation vous a été envoyé.")
	return nil
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	code := fs.String("code", "", "oob code from the reset email")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	if *code == "" {
		return fmt.Errorf("-code is required")
	}
	if msg := validation.ValidatePassword(*password); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	email, err := a.auth.Sessions().VerifyResetCode(ctx, *code)
	if err != nil {
		return err
	}
	if err := a.auth.Sessions().ConfirmPasswordReset(ctx, *code, *password); err != nil {
		return err
	}
	fmt.Printf("Mot de passe réinitialisé pour %s\n", email)
	return nil
}

func (a *app) resendVerification(ctx context.Context) error {
	if err := a.auth.Sessions().ResendVerification(ctx); err != nil {
		return err
	}
	fmt.Println("Email de vérification renvoyé.")
	return nil
}

func (a *app) whoami() error {
	role := a.auth.Resolver().Role()
	if role == "" {
		return authdomain.ErrNotSignedIn
	}
	view := a.auth.Resolver().View()
	fmt.Printf("Rôle: %s\nVue: %s\n", role, view.Heading())
	return nil
}

func (a *app) notificationsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("notifications needs a subcommand: list | create | read | read-all | delete | unread | watch")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return a.notificationsList(ctx, rest)
	case "create":
		return a.notificationsCreate(ctx, rest)
	case "read":
		return a.notificationsRead(ctx, rest)
	case "read-all":
		return a.notifications.Inbox(a.auth.Resolver().View()).MarkAllRead(ctx)
	case "delete":
		return a.notificationsDelete(ctx, rest)
	case "unread":
		fmt.Println(a.notifications.Client().UnreadCount(ctx))
		return nil
	case "watch":
		return a.notificationsWatch(ctx)
	default:
		return fmt.Errorf("unknown notifications subcommand %q", sub)
	}
}

func (a *app) notificationsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications list", flag.ExitOnError)
	unread := fs.Bool("unread", false, "only unread notifications")
	fs.Parse(args)

	inbox := a.notifications.Inbox(a.auth.Resolver().View())
	var err error
	if *unread {
		err = inbox.SetUnreadOnly(ctx, true)
	} else {
		err = inbox.Load(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println(inbox.Heading())
	printNotifications(inbox.Notifications())
	return nil
}

func (a *app) notificationsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications create", flag.ExitOnError)
	userID := fs.Int64("user", 0, "target user id")
	titre := fs.String("titre", "", "notification title")
	message := fs.String("message", "", "notification body")
	kind := fs.String("type", string(notifdomain.NotificationTypeGeneral), "grade | exam | absence | general | homework | event")
	channels := fs.String("channels", string(notifdomain.ChannelInApp), "comma-separated: in_app, email, sms")
	fs.Parse(args)

	dto := notifdomain.CreateNotificationDTO{
		UserID:  *userID,
		Titre:   *titre,
		Message: *message,
		Type:    notifdomain.NotificationType(*kind),
	}
	for _, channel := range strings.Split(*channels, ",") {
		channel = strings.TrimSpace(channel)
		if channel != "" {
			dto.Channels = append(dto.Channels, notifdomain.Channel(channel))
		}
	}

	created, err := a.notifications.Client().Create(ctx, dto)
	if err != nil {
		return err
	}
	fmt.Printf("Notification %d créée\n", created.ID)
	return nil
}

func (a *app) notificationsRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications read", flag.ExitOnError)
	id := fs.Int64("id", 0, "notification id")
	fs.Parse(args)
	return a.notifications.Inbox(a.auth.Resolver().View()).MarkRead(ctx, *id)
}

func (a *app) notificationsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "notification id")
	fs.Parse(args)
	return a.notifications.Inbox(a.auth.Resolver().View()).Delete(ctx, *id)
}

// notificationsWatch polls until interrupted, printing the badge and the
// recent entries after each refresh.
func (a *app) notificationsWatch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr := a.cfg.Metrics.Addr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("Metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	watcher := a.notifications.Watcher()
	watcher.OnUpdate = func(recent []notifdomain.Notification, unread int) {
		badge := watcher.Badge()
		if badge == "" {
			badge = "0"
		}
		fmt.Printf("--- %s | %d non lue(s) [%s]\n", time.Now().Format("15:04:05"), unread, badge)
		printNotifications(recent)
	}

	handle := watcher.Start(ctx)
	<-ctx.Done()
	handle.Stop()
	log.Println("Watch stopped")
	return nil
}

func printNotifications(notifications []notifdomain.Notification) {
	if len(notifications) == 0 {
		fmt.Println("Aucune notification")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITRE\tMESSAGE\tLU\tDATE")
	for _, n := range notifications {
		read := "non"
		if n.IsRead {
			read = "oui"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Type, n.Titre, n.Message, read, n.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func (a *app) roomsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("rooms needs a subcommand: list | get | create | update | delete | types")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return a.roomsList(ctx, rest)
	case "get":
		return a.roomsGet(ctx, rest)
	case "create":
		return a.roomsCreate(ctx, rest)
	case "update":
		return a.roomsUpdate(ctx, rest)
	case "delete":
		return a.roomsDelete(ctx, rest)
	case "types":
		for _, t := range roomdomain.SuggestedTypes {
			fmt.Println(t)
		}
		return nil
	default:
		return fmt.Errorf("unknown rooms subcommand %q", sub)
	}
}

func (a *app) roomsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms list", flag.ExitOnError)
	search := fs.String("search", "", "substring match on name or type")
	kind := fs.String("type", "", "exact type match")
	availability := fs.String("disponible", "all", "all | disponible | indisponible")
	fs.Parse(args)

	store := a.rooms.Store()
	if err := store.FetchAll(ctx); err != nil {
		return err
	}

	salles := store.Apply(roomapp.Filter{
		Search:       *search,
		Type:         *kind,
		Availability: roomapp.Availability(*availability),
	})
	printSalles(salles)
	return nil
}

func (a *app) roomsGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms get", flag.ExitOnError)
	id := fs.Int64("id", 0, "salle id")
	fs.Parse(args)

	store := a.rooms.Store()
	if err := store.FetchByID(ctx, *id); err != nil {
		return err
	}
	selected := store.Selected()
	printSalles([]roomdomain.Salle{*selected})
	return nil
}

func (a *app) roomsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms create", flag.ExitOnError)
	dto := salleFlags(fs)
	fs.Parse(args)

	store := a.rooms.Store()
	if err := store.Create(ctx, *dto); err != nil {
		return err
	}
	salles := store.Salles()
	fmt.Printf("Salle %d créée\n", salles[len(salles)-1].ID)
	return nil
}

func (a *app) roomsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms update", flag.ExitOnError)
	id := fs.Int64("id", 0, "salle id")
	dto := salleFlags(fs)
	fs.Parse(args)

	store := a.rooms.Store()
	if err := store.FetchAll(ctx); err != nil {
		return err
	}
	if err := store.Update(ctx, *id, *dto); err != nil {
		return err
	}
	fmt.Printf("Salle %d mise à jour\n", *id)
	return nil
}

func (a *app) roomsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "salle id")
	fs.Parse(args)

	if err := a.rooms.Store().Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Salle %d supprimée\n", *id)
	return nil
}

func salleFlags(fs *flag.FlagSet) *roomdomain.CreateSalleDTO {
	dto := &roomdomain.CreateSalleDTO{}
	fs.StringVar(&dto.Nom, "nom", "", "room name")
	fs.IntVar(&dto.Capacite, "capacite", 0, "room capacity")
	fs.StringVar(&dto.Type, "salle-type", "", "room type, e.g. Cours, TD, TP")
	fs.BoolVar(&dto.Disponible, "disponible", true, "room availability")
	return dto
}

func printSalles(salles []roomdomain.Salle) {
	if len(salles) == 0 {
		fmt.Println("Aucune salle")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOM\tCAPACITÉ\tTYPE\tDISPONIBLE")
	for _, s := range salles {
		available := "non"
		if s.Disponible {
			available = "oui"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", s.ID, s.Nom, s.Capacite, s.Type, available)
	}
	w.Flush()
}
