package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/talkincode/brewhub/config"
	"github.com/talkincode/brewhub/internal/app"
	"github.com/talkincode/brewhub/internal/dashboard"
	"github.com/talkincode/brewhub/internal/events"
	"go.uber.org/zap"
)

var (
	cfile    = flag.String("c", "brewhub.yml", "config file")
	email    = flag.String("email", os.Getenv("BREWHUB_EMAIL"), "account email")
	password = flag.String("password", os.Getenv("BREWHUB_PASSWORD"), "account password")
	asAdmin  = flag.Bool("admin", false, "log in as administrator")
)

// A terminal shell around the dashboard controllers: log in, print the
// menu, show cart and order history. Route changes are just printed.
func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)

	nav := dashboard.NavigatorFunc(func(route string) {
		fmt.Printf(">> %s\n", route)
	})

	if err := application.Init(nav); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	_ = application.Bus().Subscribe(events.TopicNotice, func(msg string) {
		fmt.Println("!", msg)
	})

	ctx := context.Background()

	if !application.Session().LoggedIn() || application.Session().Expired() {
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "no stored session; pass -email and -password")
			os.Exit(1)
		}
		var err error
		if *asAdmin {
			err = application.Auth().LoginAdmin(ctx, *email, *password)
		} else {
			err = application.Auth().Login(ctx, *email, *password)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
	}

	application.StartBackgroundJobs()

	if application.Session().IsAdmin() {
		runAdmin(ctx, application)
		return
	}
	runUser(ctx, application)
}

func runUser(ctx context.Context, application *app.Application) {
	dash := application.UserDashboard()
	if err := dash.Refresh(ctx); err != nil {
		zap.S().Errorf("refresh failed: %v", err)
		return
	}

	fmt.Println("PRODUCTS")
	for _, p := range dash.VisibleProducts() {
		mark := " "
		if dash.InWishlist(p.ID) {
			mark = "*"
		}
		fmt.Printf("  %s %-24s %8s  %s\n", mark, p.Name, p.Price.StringFixed(2), p.CategoryName())
	}

	fmt.Printf("CART (%d)\n", dash.CartCount())
	for _, l := range dash.CartLines() {
		fmt.Printf("    %-24s x%d %8s\n", l.Name, l.Quantity, l.LineTotal().StringFixed(2))
	}
	fmt.Printf("  total %s\n", application.Cart().Total().StringFixed(2))

	fmt.Println("ORDER HISTORY")
	for _, o := range dash.Orders() {
		fmt.Printf("    %-24s x%d %8s\n", o.ProductName, o.Quantity, o.Price.StringFixed(2))
	}
}

func runAdmin(ctx context.Context, application *app.Application) {
	dash := application.AdminDashboard()
	if err := dash.Refresh(ctx); err != nil {
		zap.S().Errorf("refresh failed: %v", err)
		return
	}

	fmt.Println("PRODUCTS")
	for _, p := range dash.VisibleProducts() {
		fmt.Printf("    %-24s %8s  %s\n", p.Name, p.Price.StringFixed(2), p.CategoryName())
	}

	fmt.Println("USERS")
	for _, u := range dash.Users() {
		fmt.Printf("    %-24s %s\n", u.Name, u.Email)
	}

	if bookings, err := dash.AllBookings(ctx); err == nil {
		fmt.Println("BOOKINGS")
		for _, b := range bookings {
			fmt.Printf("    %-20s %s %s guests=%d\n", b.Name, b.Date, b.Time, b.Guests)
		}
	}
}
