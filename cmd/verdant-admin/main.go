// cmd/verdant-admin/main.go
//
// Scriptable admin CLI for the verdant backend. Shares the session store and
// API client with the TUI, so `verdant-admin login` and the dashboard screen
// see the same signed-in admin.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/config"
	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/shop"
)

const usage = `verdant-admin - manage the verdant storefront

Usage:
  verdant-admin <command> [args]

Commands:
  login <email> <password>        sign in as an admin
  whoami                          show the current session
  logout                          sign out

  plants list                     list all plants
  plants add -name N -price P -stock S [-desc D] [-image URL]
  plants update <id> [-name N] [-price P] [-stock S] [-desc D] [-image URL]
  plants delete <id>              delete a plant
  plants search <name>            search plants by name

  orders list                     list all orders
  orders show <id>                show one order with its timeline
  orders set-status <id> <status> set an order's status

  users list                      list all users
  users show <id>                 show one user
  users admins                    list admin accounts
  users search [-email E] [-name N]
  users toggle <id>               enable/disable a user
  users role <id> <ADMIN|CUSTOMER>
  users delete <id>               delete a user
  users stats                     show user aggregates

  dashboard                       full admin summary (plants, orders, users)

The backend URL comes from config.yaml or the ` + config.ServerEnvVar + ` environment
variable.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	client, err := newClient()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = cmdLogin(client, args)
	case "whoami":
		err = cmdWhoami(client)
	case "logout":
		err = cmdLogout(client)
	case "plants":
		err = cmdPlants(client, args)
	case "orders":
		err = cmdOrders(client, args)
	case "users":
		err = cmdUsers(client, args)
	case "dashboard":
		err = cmdDashboard(client)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newClient() (*api.Client, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := config.InitDir(dir); err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return api.New(cfg.ServerURL(), session.NewStore(cfg.Dir), nil)
}

func cmdLogin(client *api.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	resp, err := client.AdminLogin(context.Background(), api.Credentials{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("login refused: %s", resp.Message)
	}
	color.Green("Logged in as %s", resp.Email)
	return nil
}

func cmdWhoami(client *api.Client) error {
	if _, ok := client.Sessions().Load(); !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	// Ask the backend rather than trusting the local file; an expired
	// session gets cleared by the client and reported here.
	me, err := client.Me(context.Background())
	if err != nil {
		return err
	}
	cyan := color.New(color.FgCyan)
	cyan.Printf("%s", me.Name)
	fmt.Printf(" <%s> role=%s id=%d\n", me.Email, me.Role, me.UserID)
	return nil
}

func cmdLogout(client *api.Client) error {
	if err := client.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func cmdPlants(client *api.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: plants list|add|update|delete|search")
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		plants, err := client.AdminPlants(ctx)
		if err != nil {
			return err
		}
		printPlants(plants)
		return nil

	case "add":
		fs := flag.NewFlagSet("plants add", flag.ExitOnError)
		input := bindPlantFlags(fs)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if input.Name == "" {
			return fmt.Errorf("-name is required")
		}
		plant, err := client.CreatePlant(ctx, *input)
		if err != nil {
			return err
		}
		color.Green("Created plant #%d %q", plant.ID, plant.Name)
		return nil

	case "update":
		if len(args) < 2 {
			return fmt.Errorf("usage: plants update <id> [flags]")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		existing, err := client.Plant(ctx, id)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("plants update", flag.ExitOnError)
		input := bindPlantFlagsWithDefaults(fs, existing)
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		plant, err := client.UpdatePlant(ctx, id, *input)
		if err != nil {
			return err
		}
		color.Green("Updated plant #%d %q", plant.ID, plant.Name)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: plants delete <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := client.DeletePlant(ctx, id); err != nil {
			return err
		}
		color.Green("Deleted plant #%d", id)
		return nil

	case "search":
		if len(args) != 2 {
			return fmt.Errorf("usage: plants search <name>")
		}
		plants, err := client.SearchPlants(ctx, args[1])
		if err != nil {
			return err
		}
		printPlants(plants)
		return nil
	}
	return fmt.Errorf("unknown plants subcommand %q", args[0])
}

func bindPlantFlags(fs *flag.FlagSet) *api.PlantInput {
	return bindPlantFlagsWithDefaults(fs, shop.Plant{})
}

func bindPlantFlagsWithDefaults(fs *flag.FlagSet, existing shop.Plant) *api.PlantInput {
	input := &api.PlantInput{}
	fs.StringVar(&input.Name, "name", existing.Name, "plant name")
	fs.StringVar(&input.Description, "desc", existing.Description, "description")
	fs.Float64Var(&input.Price, "price", existing.Price, "price")
	fs.IntVar(&input.Stock, "stock", existing.Stock, "stock count")
	fs.StringVar(&input.ImageURL, "image", existing.ImageURL, "image URL")
	return input
}

func cmdOrders(client *api.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: orders list|show|set-status")
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		orders, err := client.AdminOrders(ctx)
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: orders show <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		order, err := client.AdminOrder(ctx, id)
		if err != nil {
			return err
		}
		printOrderDetail(order)
		return nil

	case "set-status":
		if len(args) != 3 {
			return fmt.Errorf("usage: orders set-status <id> <status>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		status := shop.ParseStatus(args[2])
		if status == shop.StatusUnknown {
			return fmt.Errorf("unknown status %q (want one of %v)", args[2], shop.AllStatuses)
		}
		resp, err := client.UpdateOrderStatus(ctx, id, status)
		if err != nil {
			return err
		}
		if !resp.Success && resp.Message != "" {
			return fmt.Errorf("%s", resp.Message)
		}
		color.Green("Order #%d is now %s", id, status)
		return nil
	}
	return fmt.Errorf("unknown orders subcommand %q", args[0])
}

func cmdUsers(client *api.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: users list|show|admins|search|toggle|role|delete|stats")
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		users, err := client.Users(ctx)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: users show <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		user, err := client.User(ctx, id)
		if err != nil {
			return err
		}
		printUsers([]shop.User{user})
		return nil

	case "admins":
		admins, err := client.Admins(ctx)
		if err != nil {
			return err
		}
		printUsers(admins)
		return nil

	case "search":
		fs := flag.NewFlagSet("users search", flag.ExitOnError)
		email := fs.String("email", "", "filter by email")
		name := fs.String("name", "", "filter by name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		users, err := client.SearchUsers(ctx, *email, *name)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil

	case "toggle":
		if len(args) != 2 {
			return fmt.Errorf("usage: users toggle <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		resp, err := client.ToggleUserStatus(ctx, id)
		if err != nil {
			return err
		}
		color.Green("Toggled user #%d: %s", id, resp.Message)
		return nil

	case "role":
		if len(args) != 3 {
			return fmt.Errorf("usage: users role <id> <ADMIN|CUSTOMER>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		role := args[2]
		if role != session.RoleAdmin && role != session.RoleCustomer {
			return fmt.Errorf("role must be %s or %s", session.RoleAdmin, session.RoleCustomer)
		}
		if _, err := client.UpdateUserRole(ctx, id, role); err != nil {
			return err
		}
		color.Green("User #%d is now %s", id, role)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: users delete <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if _, err := client.DeleteUser(ctx, id); err != nil {
			return err
		}
		color.Green("Deleted user #%d", id)
		return nil

	case "stats":
		stats, err := client.UserStats(ctx)
		if err != nil {
			return err
		}
		printStats(stats)
		return nil
	}
	return fmt.Errorf("unknown users subcommand %q", args[0])
}

// cmdDashboard mirrors the TUI dashboard's initial load: five concurrent
// fetches, all-or-nothing.
func cmdDashboard(client *api.Client) error {
	var (
		plants    []shop.Plant
		orders    []shop.Order
		users     []shop.User
		customers []shop.User
		stats     shop.UserStats
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		plants, err = client.AdminPlants(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = client.AdminOrders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = client.Users(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = client.Customers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = client.UserStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	header := color.New(color.FgGreen, color.Bold)
	header.Println("== Plants ==")
	printPlants(plants)
	header.Println("\n== Orders ==")
	printOrders(orders)
	header.Printf("\n== Users (%d customers) ==\n", len(customers))
	printUsers(users)
	header.Println("\n== Stats ==")
	printStats(stats)
	return nil
}

func printPlants(plants []shop.Plant) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range plants {
		fmt.Fprintf(w, "%d\t%s\t$%s\t%d (%s)\n", p.ID, p.Name, shop.FormatPrice(p.Price), p.Stock, shop.StockLevelFor(p.Stock).Label())
	}
	w.Flush()
}

func printOrders(orders []shop.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tDATE\tSTATUS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "#%d\t%s\t%s\t$%s\n", o.OrderID, o.OrderDate, o.Status, shop.FormatPrice(o.TotalAmount))
	}
	w.Flush()
}

func printOrderDetail(order shop.Order) {
	cyan := color.New(color.FgCyan)
	cyan.Printf("Order #%d", order.OrderID)
	fmt.Printf("  %s  %s\n\n", order.OrderDate, order.Status)

	timeline := shop.TimelineFor(order.Status)
	steps := []struct {
		label string
		done  bool
	}{
		{"placed", timeline.Placed},
		{"processed", timeline.Processed},
		{"shipped", timeline.Shipped},
		{"delivered", timeline.Delivered},
	}
	for _, step := range steps {
		mark := "[ ]"
		if step.done {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, step.label)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, item := range order.Items {
		fmt.Fprintf(w, "%dx\t%s\t$%s\n", item.Quantity, item.PlantName, shop.FormatPrice(item.Subtotal))
	}
	w.Flush()
	fmt.Printf("\nTotal $%s\n", shop.FormatPrice(order.TotalAmount))
}

func printUsers(users []shop.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.Enabled)
	}
	w.Flush()
}

func printStats(stats shop.UserStats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Customers\t%d\n", stats.TotalCustomers)
	fmt.Fprintf(w, "Admins\t%d\n", stats.TotalAdmins)
	fmt.Fprintf(w, "Active\t%d\n", stats.ActiveUsers)
	w.Flush()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
