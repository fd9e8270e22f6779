// Command admin manages groups and users outside the API.
//
//	admin group create -title T -slug S -description D
//	admin group list
//	admin group delete -id N
//	admin user delete -username U
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/services"
	"yatube/internal/utils"

	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	conn, err := db.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	images := services.NewImageStore(cfg.Media.Root, cfg.Media.URL)
	if err := run(context.Background(), conn, images, os.Stdout, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin [-config file] group create|list|delete | user delete [flags]")
	flag.PrintDefaults()
}

// run executes one admin command against conn.
func run(ctx context.Context, conn *gorm.DB, images *services.ImageStore, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("expected a resource and an action")
	}
	resource, action, rest := args[0], args[1], args[2:]

	groups := services.NewGroupService(conn, utils.NewCache(16))
	users := services.NewUserService(conn, images)

	switch resource + " " + action {
	case "group create":
		fs := flag.NewFlagSet("group create", flag.ContinueOnError)
		title := fs.String("title", "", "group title")
		slug := fs.String("slug", "", "unique slug")
		description := fs.String("description", "", "group description")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		g, err := groups.Create(ctx, services.GroupInput{Title: *title, Slug: *slug, Description: *description})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created group %d (%s)\n", g.ID, g.Slug)

	case "group list":
		list, err := groups.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tTITLE")
		for _, g := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
		}
		return w.Flush()

	case "group delete":
		fs := flag.NewFlagSet("group delete", flag.ContinueOnError)
		id := fs.Uint("id", 0, "group id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := groups.Delete(ctx, uint(*id)); err != nil {
			return fmt.Errorf("delete group %d: %w", *id, err)
		}
		fmt.Fprintf(out, "deleted group %d\n", *id)

	case "user delete":
		fs := flag.NewFlagSet("user delete", flag.ContinueOnError)
		username := fs.String("username", "", "username")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := users.Delete(ctx, *username); err != nil {
			return fmt.Errorf("delete user %q: %w", *username, err)
		}
		fmt.Fprintf(out, "deleted user %s\n", *username)

	default:
		return fmt.Errorf("unknown command %q", resource+" "+action)
	}
	return nil
}
