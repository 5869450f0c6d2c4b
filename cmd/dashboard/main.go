package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	config "github.com/maheshrc27/pageflow/configs"
	"github.com/maheshrc27/pageflow/internal/dashboard"
	"github.com/maheshrc27/pageflow/internal/models"
	"github.com/maheshrc27/pageflow/internal/relay"
	"github.com/maheshrc27/pageflow/internal/repository"
	"github.com/maheshrc27/pageflow/internal/storage"
	"github.com/maheshrc27/pageflow/internal/transfer"
)

const usage = `usage: dashboard <command> [flags]

commands:
  creds            store page credentials
  post             submit a post through the relay
  templates        list saved templates
  save-template    save the given fields as a named template
  delete-template  delete a template by id
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadConfig()

	store, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("Failed to open state dir: %v", err)
	}

	client := relay.NewClient(cfg.RelayURL, cfg.UpstreamTimeout)
	ctrl, err := dashboard.NewController(
		client,
		repository.NewCredentialsRepository(store),
		repository.NewTemplateRepository(store),
	)
	if err != nil {
		log.Fatalf("Failed to load dashboard state: %v", err)
	}

	switch os.Args[1] {
	case "creds":
		runCreds(ctrl, os.Args[2:])
	case "post":
		runPost(ctrl, os.Args[2:])
	case "templates":
		runTemplates(ctrl)
	case "save-template":
		runSaveTemplate(ctrl, os.Args[2:])
	case "delete-template":
		runDeleteTemplate(ctrl, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runCreds(ctrl *dashboard.Controller, args []string) {
	fs := flag.NewFlagSet("creds", flag.ExitOnError)
	pageID := fs.String("page", "", "page id")
	token := fs.String("token", "", "page access token")
	fs.Parse(args)

	if err := ctrl.SetCredentials(*pageID, *token); err != nil {
		log.Fatalf("Failed to save credentials: %v", err)
	}
	fmt.Println("Credentials saved.")
}

func runPost(ctrl *dashboard.Controller, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	message := fs.String("message", "", "post message")
	link := fs.String("link", "", "link to attach (feed posts only)")
	image := fs.String("image", "", "image url (switches to a photo post)")
	schedule := fs.String("schedule", "", "future publish time, e.g. 2026-09-01T10:00")
	template := fs.String("template", "", "template id to apply before posting")
	fs.Parse(args)

	if *template != "" {
		if err := ctrl.ApplyTemplate(*template); err != nil {
			log.Fatalf("Failed to apply template: %v", err)
		}
	}

	composer := ctrl.Composer()
	if *message != "" {
		composer.Message = *message
	}
	if *link != "" {
		composer.Link = *link
	}
	if *image != "" {
		composer.ImageURL = *image
	}
	composer.Mode = transfer.ModeNow
	if *schedule != "" {
		composer.Mode = transfer.ModeSchedule
		composer.ScheduledTime = *schedule
	}
	ctrl.SetComposer(composer)

	id, err := ctrl.Submit(context.Background())
	if err != nil {
		log.Fatalf("Submission rejected: %v", err)
	}
	ctrl.Wait()

	for _, entry := range ctrl.Queue() {
		if entry.ID != id {
			continue
		}
		switch entry.Status {
		case models.PostStatusSuccess:
			fmt.Printf("Published: %s\n", entry.Response.ID)
		default:
			log.Fatalf("Publish failed: %s", entry.Response.Error)
		}
	}
}

func runTemplates(ctrl *dashboard.Controller) {
	templates := ctrl.Templates()
	if len(templates) == 0 {
		fmt.Println("No templates saved.")
		return
	}
	for _, t := range templates {
		fmt.Printf("%s\t%s\t%s\n", t.ID, t.Name, t.Message)
	}
}

func runSaveTemplate(ctrl *dashboard.Controller, args []string) {
	fs := flag.NewFlagSet("save-template", flag.ExitOnError)
	name := fs.String("name", "", "template name")
	message := fs.String("message", "", "post message")
	link := fs.String("link", "", "link to attach")
	image := fs.String("image", "", "image url")
	fs.Parse(args)

	ctrl.SetComposer(dashboard.Composer{
		Message:  *message,
		Link:     *link,
		ImageURL: *image,
		Mode:     transfer.ModeNow,
	})

	tmpl, err := ctrl.SaveTemplate(*name)
	if err != nil {
		log.Fatalf("Failed to save template: %v", err)
	}
	fmt.Printf("Template saved: %s\n", tmpl.ID)
}

func runDeleteTemplate(ctrl *dashboard.Controller, args []string) {
	fs := flag.NewFlagSet("delete-template", flag.ExitOnError)
	id := fs.String("id", "", "template id")
	fs.Parse(args)

	if err := ctrl.DeleteTemplate(*id); err != nil {
		log.Fatalf("Failed to delete template: %v", err)
	}
	fmt.Println("Template deleted.")
}
