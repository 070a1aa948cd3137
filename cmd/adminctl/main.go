// Command adminctl drives the registration-approval API from the terminal:
//
//	adminctl -server http://localhost:8080 -token $TOKEN list
//	adminctl -server http://localhost:8080 -token $TOKEN approve req-1712345
//	adminctl -server http://localhost:8080 -token $TOKEN decline req-1712345
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mealops/kitchen-system/internal/gateway"
	"github.com/mealops/kitchen-system/pkg/logger"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the back office API")
	token := flag.String("token", os.Getenv("KITCHEN_TOKEN"), "bearer token (defaults to KITCHEN_TOKEN)")
	flag.Parse()

	log := logger.Init(logger.Options{Level: "warn", Pretty: true})

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: adminctl [flags] list | approve <id> | decline <id>")
		os.Exit(2)
	}

	client := gateway.NewClient(*server, func() string { return *token }, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "list":
		var items []gateway.RequestItem
		items, err = client.ListRequests(ctx)
		if err == nil {
			if len(items) == 0 {
				fmt.Println("no pending requests")
			}
			for _, item := range items {
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Email, item.Name, item.Role, item.CreatedAt.Format(time.RFC3339))
			}
		}
	case "approve":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "approve requires a request id")
			os.Exit(2)
		}
		if err = client.ApproveRequest(ctx, args[1]); err == nil {
			fmt.Printf("approved %s\n", args[1])
		}
	case "decline":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "decline requires a request id")
			os.Exit(2)
		}
		if err = client.DeclineRequest(ctx, args[1]); err == nil {
			fmt.Printf("declined %s\n", args[1])
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
